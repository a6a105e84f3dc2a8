package services

import (
	"testing"
	"time"

	"moneta/internal/models"
	"moneta/internal/pagination"
	"moneta/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("applies_balance_once", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 10000)

		tx, err := svc.CreateTransaction(user.ID, account.ID, nil, -2500, "Groceries", time.Now())
		testutil.AssertNoError(t, err)

		if tx.IsScheduled {
			t.Error("expected a posted transaction")
		}

		var stored models.Account
		db.First(&stored, "id = ?", account.ID)
		if stored.Balance != 7500 {
			t.Errorf("expected balance 7500 after posting, got %d", stored.Balance)
		}
	})

	t.Run("zero_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 0)

		_, err := svc.CreateTransaction(user.ID, account.ID, nil, 0, "Nothing", time.Now())
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateTransaction(user.ID, "00000000-0000-0000-0000-000000000000", nil, 1000, "", time.Now())
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("unknown_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 0)

		badCat := "00000000-0000-0000-0000-000000000000"
		_, err := svc.CreateTransaction(user.ID, account.ID, &badCat, 1000, "", time.Now())
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestCreateScheduledTransaction(t *testing.T) {
	t.Run("never_touches_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 10000)

		tx, err := svc.CreateScheduledTransaction(user.ID, account.ID, nil, -2500, "Rent", time.Now().AddDate(0, 0, 5), nil)
		testutil.AssertNoError(t, err)

		if !tx.IsScheduled {
			t.Error("expected a scheduled transaction")
		}

		var stored models.Account
		db.First(&stored, "id = ?", account.ID)
		if stored.Balance != 10000 {
			t.Errorf("scheduled transaction must not change balance, got %d", stored.Balance)
		}
	})

	t.Run("recurring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 0)

		freq := models.FrequencyMonthly
		tx, err := svc.CreateScheduledTransaction(user.ID, account.ID, nil, -150000, "Rent", time.Now().AddDate(0, 0, 3), &freq)
		testutil.AssertNoError(t, err)

		if tx.Recurrence == nil || *tx.Recurrence != models.FrequencyMonthly {
			t.Error("expected monthly recurrence")
		}
	})

	t.Run("invalid_recurrence", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 0)

		freq := models.Frequency("fortnightly")
		_, err := svc.CreateScheduledTransaction(user.ID, account.ID, nil, -1000, "", time.Now(), &freq)
		testutil.AssertAppError(t, err, "INVALID_RECURRENCE")
	})
}

func TestMarkPaid(t *testing.T) {
	t.Run("one_off_converts_in_place", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 10000)
		scheduled := testutil.CreateTestScheduledTransaction(t, db, user.ID, account.ID, -2500, time.Now().AddDate(0, 0, 5))

		paidAt := time.Now()
		posted, err := svc.MarkPaid(user.ID, scheduled.ID, paidAt)
		testutil.AssertNoError(t, err)

		if posted.ID != scheduled.ID {
			t.Error("one-off schedule should convert in place")
		}
		if posted.IsScheduled || !posted.IsPaid {
			t.Error("expected a paid posted transaction")
		}

		var stored models.Account
		db.First(&stored, "id = ?", account.ID)
		if stored.Balance != 7500 {
			t.Errorf("expected balance 7500 after settling, got %d", stored.Balance)
		}
	})

	t.Run("recurring_posts_copy_and_advances_rule", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 10000)

		due := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		freq := models.FrequencyMonthly
		rule, err := svc.CreateScheduledTransaction(user.ID, account.ID, nil, -1500, "Streaming", due, &freq)
		testutil.AssertNoError(t, err)

		posted, err := svc.MarkPaid(user.ID, rule.ID, due)
		testutil.AssertNoError(t, err)

		if posted.ID == rule.ID {
			t.Error("recurring rule should post a separate transaction")
		}

		var storedRule models.Transaction
		db.First(&storedRule, "id = ?", rule.ID)
		if !storedRule.IsScheduled {
			t.Error("rule should remain scheduled")
		}
		wantNext := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		if !storedRule.Date.Equal(wantNext) {
			t.Errorf("expected rule advanced to %v, got %v", wantNext, storedRule.Date)
		}

		var stored models.Account
		db.First(&stored, "id = ?", account.ID)
		if stored.Balance != 8500 {
			t.Errorf("expected balance 8500, got %d", stored.Balance)
		}
	})

	t.Run("posted_transaction_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 0)
		posted := testutil.CreateTestTransaction(t, db, user.ID, account.ID, -1000)

		_, err := svc.MarkPaid(user.ID, posted.ID, time.Now())
		testutil.AssertAppError(t, err, "NOT_SCHEDULED")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("posted_reverses_balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		accountSvc := NewAccountService(db)
		svc := NewTransactionService(db, accountSvc)
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 10000)

		tx, err := svc.CreateTransaction(user.ID, account.ID, nil, -2500, "Groceries", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteTransaction(user.ID, tx.ID))

		var stored models.Account
		db.First(&stored, "id = ?", account.ID)
		if stored.Balance != 10000 {
			t.Errorf("expected balance restored to 10000, got %d", stored.Balance)
		}
	})

	t.Run("scheduled_no_balance_effect", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 10000)
		scheduled := testutil.CreateTestScheduledTransaction(t, db, user.ID, account.ID, -2500, time.Now().AddDate(0, 0, 5))

		testutil.AssertNoError(t, svc.DeleteTransaction(user.ID, scheduled.ID))

		var stored models.Account
		db.First(&stored, "id = ?", account.ID)
		if stored.Balance != 10000 {
			t.Errorf("expected balance unchanged at 10000, got %d", stored.Balance)
		}
	})
}

func TestGetUserTransactions(t *testing.T) {
	t.Run("filter_by_scheduled", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 0)

		testutil.CreateTestTransaction(t, db, user.ID, account.ID, -1000)
		testutil.CreateTestTransaction(t, db, user.ID, account.ID, -2000)
		testutil.CreateTestScheduledTransaction(t, db, user.ID, account.ID, -3000, time.Now().AddDate(0, 0, 7))

		scheduled := true
		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserTransactions(user.ID, page, TransactionFilter{IsScheduled: &scheduled})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 scheduled transaction, got %d", result.TotalItems)
		}
	})

	t.Run("filter_by_date_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db, NewAccountService(db))
		user := testutil.CreateTestUser(t, db)
		account := testutil.CreateTestCurrentAccount(t, db, user.ID, 0)

		old := testutil.CreateTestTransaction(t, db, user.ID, account.ID, -1000)
		testutil.AssertNoError(t, db.Model(old).Update("date", time.Now().AddDate(0, -2, 0)).Error)
		testutil.CreateTestTransaction(t, db, user.ID, account.ID, -2000)

		from := time.Now().AddDate(0, -1, 0)
		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserTransactions(user.ID, page, TransactionFilter{FromDate: &from})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 transaction in range, got %d", result.TotalItems)
		}
	})
}
