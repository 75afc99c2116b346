// Package cooperative manages pooled-savings memberships: contribution
// accrual with a projected dividend figure, and the realized month-end
// dividend snapshot.
package cooperative

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Popsicool/wages-finance/pkg/models"
	"github.com/Popsicool/wages-finance/pkg/money"
	"github.com/Popsicool/wages-finance/pkg/notify"
	"github.com/Popsicool/wages-finance/pkg/storage"
)

// MonthKeyFormat renders the append-only dividend key, e.g. "January 2006".
const MonthKeyFormat = "January 2006"

// Engine handles the business logic for cooperative memberships.
type Engine struct {
	store    storage.CooperativeStore
	wallets  storage.WalletStore
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewEngine creates an Engine with the given stores and notification sink.
func NewEngine(store storage.CooperativeStore, wallets storage.WalletStore, notifier notify.Notifier, logger *slog.Logger) *Engine {
	return &Engine{store: store, wallets: wallets, notifier: notifier, logger: logger}
}

// AccrueContribution debits the member's wallet into the cooperative balance
// and adds the contribution's projected dividend for the rest of the year.
// The projection is a running estimate; the realized figure is written only
// by the month-end snapshot.
func (e *Engine) AccrueContribution(ctx context.Context, userID string, amount int64, asOf time.Time) error {
	if amount <= 0 {
		return fmt.Errorf("contribution must be positive: %w", storage.ErrNotEligible)
	}

	membership, err := e.store.GetMembership(ctx, userID)
	if err != nil {
		return err
	}
	if !membership.Active {
		return fmt.Errorf("membership %s is inactive: %w", membership.MembershipID, storage.ErrNotEligible)
	}

	wallet, err := e.wallets.GetWallet(ctx, userID)
	if err != nil {
		return err
	}
	if wallet.Balance < amount {
		return fmt.Errorf("membership %s contribution: %w", membership.MembershipID, storage.ErrInsufficientFunds)
	}

	membership.Balance += amount
	membership.ProjectedDividend += money.ProRata(daysRemainingInYear(asOf), money.CooperativeDailyRate, amount)

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     "Cooperative Contribution",
		Amount:    amount,
		Direction: models.DEBIT,
		Source:    models.SourceCooperative,
		CreatedAt: time.Now(),
	}

	if err := e.store.UpdateMembership(ctx, membership, -amount, activity); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, userID, "Cooperative Contribution",
		fmt.Sprintf("Your cooperative balance grew by %d to %d", amount, membership.Balance))
	return nil
}

// SnapshotMonthEndDividend realizes the month's dividend from the balance at
// the snapshot instant: 2% of the closing balance, stored unpaid under the
// month key. Runs only on the last calendar day of the month, and at most
// once per month key.
func (e *Engine) SnapshotMonthEndDividend(ctx context.Context, userID string, asOf time.Time) error {
	if !isLastDayOfMonth(asOf) {
		return fmt.Errorf("dividend snapshot only runs at month end: %w", storage.ErrNotEligible)
	}

	membership, err := e.store.GetMembership(ctx, userID)
	if err != nil {
		return err
	}
	if !membership.Active {
		return fmt.Errorf("membership %s is inactive: %w", membership.MembershipID, storage.ErrNotEligible)
	}

	monthKey := asOf.Format(MonthKeyFormat)
	if membership.HasDividendFor(monthKey) {
		return fmt.Errorf("dividend for %s: %w", monthKey, storage.ErrAlreadyProcessed)
	}

	dividend := money.Share(money.DividendRate, membership.Balance)
	membership.Dividends = append(membership.Dividends, models.DividendEntry{
		MonthKey:       monthKey,
		ClosingBalance: membership.Balance,
		Dividend:       dividend,
		Paid:           false,
	})

	if err := e.store.UpdateMembership(ctx, membership, 0, nil); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, userID, "Dividend Declared",
		fmt.Sprintf("Your %s dividend of %d has been declared", monthKey, dividend))
	return nil
}

func (e *Engine) notifyBestEffort(ctx context.Context, userID, title, body string) {
	if e.notifier == nil {
		return
	}
	n := notify.Notification{UserID: userID, Title: title, Body: body, CreatedAt: time.Now()}
	if err := e.notifier.Notify(ctx, n); err != nil && e.logger != nil {
		e.logger.Error("failed to enqueue notification", "user_id", userID, "title", title, "error", err)
	}
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

func daysRemainingInYear(t time.Time) int {
	endOfYear := time.Date(t.Year(), 12, 31, 0, 0, 0, 0, time.UTC)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(endOfYear.Sub(day).Hours() / 24)
}
