package engine

import (
	"time"

	"moneta/internal/models"
)

// Shared helpers for engine tests. All dates are built in UTC; the engine
// itself works in the snapshot's Now location.

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func freqPtr(f models.Frequency) *models.Frequency {
	return &f
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(v int64) *int64 {
	return &v
}

func postedTx(accountID string, amount int64, on time.Time) models.Transaction {
	return models.Transaction{
		Base:      models.Base{ID: "tx-" + on.Format("20060102") + "-" + accountID},
		AccountID: accountID,
		Amount:    amount,
		Date:      on,
	}
}

func scheduledTx(id, accountID string, amount int64, on time.Time) models.Transaction {
	return models.Transaction{
		Base:        models.Base{ID: id},
		AccountID:   accountID,
		Amount:      amount,
		Date:        on,
		IsScheduled: true,
	}
}
