package engine

import "time"

// BalancePoint is a single day-granular point in a balance forecast.
// Projected is false for reconstructed history and the anchor day, true for
// future days.
type BalancePoint struct {
	Date      time.Time `json:"date"`
	Balance   int64     `json:"balance"`
	Projected bool      `json:"projected"`
}

// Forecast is the projected balance series for one account. Points always
// contains exactly LookbackDays + HorizonDays + 1 entries in ascending date
// order; the final point is the authoritative end-of-horizon projection.
type Forecast struct {
	AccountID   string         `json:"account_id"`
	Points      []BalancePoint `json:"points"`
	Diagnostics Diagnostics    `json:"diagnostics,omitempty"`
}

// EndBalance returns the balance of the final projected point.
func (f *Forecast) EndBalance() int64 {
	return f.Points[len(f.Points)-1].Balance
}

// ForecastAccount computes the balance series for one account: a lookback
// window reconstructed by walking backward from the current balance through
// posted transactions, the anchor day at the current balance, and a forward
// projection applying scheduled and recurring transactions on their due
// days. Multiple transactions on the same day all apply before the day's
// point is emitted; intra-day ordering is not part of the contract.
func (e *Engine) ForecastAccount(snap *Snapshot, accountID string) (*Forecast, error) {
	idx := snap.buildIndex()
	account, ok := idx.accounts[accountID]
	if !ok {
		return nil, ErrAccountNotFound
	}

	loc := snap.Now.Location()
	today := dayOf(snap.Now, loc)
	horizonEnd := today.AddDate(0, 0, e.cfg.HorizonDays)
	txs := idx.txByAccount[accountID]

	var diag Diagnostics

	// Posted cash flow per day, for lookback reconstruction.
	postedByDay := make(map[string]int64)
	for _, tx := range txs {
		if tx.IsScheduled {
			continue
		}
		d := dayOf(tx.Date, loc)
		if !d.After(today) {
			postedByDay[d.Format(dayFormat)] += tx.Amount
		}
	}

	schedByDay := e.scheduledAmountsByDay(txs, today, horizonEnd, loc, &diag)

	lookback := e.cfg.LookbackDays
	points := make([]BalancePoint, 0, lookback+e.cfg.HorizonDays+1)

	// Closing balance per lookback day: the close of day d-1 is the close
	// of day d minus everything posted on day d. closes[i] is the close of
	// (today - i days).
	closes := make([]int64, lookback+1)
	running := account.Balance
	day := today
	for i := 0; i <= lookback; i++ {
		closes[i] = running
		running -= postedByDay[day.Format(dayFormat)]
		day = day.AddDate(0, 0, -1)
	}
	for i := lookback; i >= 1; i-- {
		points = append(points, BalancePoint{
			Date:    today.AddDate(0, 0, -i),
			Balance: closes[i],
		})
	}
	points = append(points, BalancePoint{Date: today, Balance: account.Balance})

	// Forward walk from the current balance.
	running = account.Balance
	for i := 1; i <= e.cfg.HorizonDays; i++ {
		d := today.AddDate(0, 0, i)
		running += schedByDay[d.Format(dayFormat)]
		points = append(points, BalancePoint{Date: d, Balance: running, Projected: true})
	}

	return &Forecast{AccountID: accountID, Points: points, Diagnostics: diag}, nil
}
