// Package savings advances recurring savings plans: scheduled contribution
// capture, pro-rata interest accrual, maturity payout and early cancellation.
package savings

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

// Engine handles the business logic for savings plans.
type Engine struct {
	store    storage.SavingsStore
	wallets  storage.WalletStore
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewEngine creates an Engine with the given stores and notification sink.
func NewEngine(store storage.SavingsStore, wallets storage.WalletStore, notifier notify.Notifier, logger *slog.Logger) *Engine {
	return &Engine{store: store, wallets: wallets, notifier: notifier, logger: logger}
}

// RemainingContribution returns how much of the plan's per-period amount is
// still uncovered for the period containing asOf: the calendar day for DAILY
// plans, the trailing 6-day window for WEEKLY, the trailing 30-day window for
// MONTHLY. Paid entries inside the window count towards the amount, so a
// second capture in the same period finds nothing left to take.
func RemainingContribution(plan *models.SavingsPlan, asOf time.Time) int64 {
	var windowStart time.Time
	day := dateOf(asOf)
	switch plan.Frequency {
	case models.FrequencyWeekly:
		windowStart = day.AddDate(0, 0, -6)
	case models.FrequencyMonthly:
		windowStart = day.AddDate(0, 0, -30)
	default:
		windowStart = day
	}

	remaining := plan.Amount
	for _, entry := range plan.Payments {
		if !entry.Paid {
			continue
		}
		entryDay := dateOf(entry.Date)
		if entryDay.Before(windowStart) || entryDay.After(day) {
			continue
		}
		remaining -= entry.Amount
		if remaining <= 0 {
			return 0
		}
	}

	return remaining
}

// IsContributionDue reports whether the plan still owes a contribution for
// the period containing asOf.
func IsContributionDue(plan *models.SavingsPlan, asOf time.Time) bool {
	return RemainingContribution(plan, asOf) > 0
}

// CaptureContribution debits the owner's wallet for the period's remaining
// contribution, accrues pro-rata interest towards the withdrawal date and
// records the payment. Idempotent per period: once the period is covered the
// call returns ErrAlreadyProcessed instead of double-debiting.
func (e *Engine) CaptureContribution(ctx context.Context, planID string, asOf time.Time) error {
	plan, err := e.store.GetSavingsPlan(ctx, planID)
	if err != nil {
		return err
	}

	if !plan.Active || plan.GoalMet {
		return fmt.Errorf("savings plan %s: %w", planID, storage.ErrAlreadyProcessed)
	}
	day := dateOf(asOf)
	if day.Before(dateOf(plan.StartDate)) || day.After(dateOf(plan.WithdrawalDate)) {
		return fmt.Errorf("savings plan %s outside saving window: %w", planID, storage.ErrNotEligible)
	}

	remaining := RemainingContribution(plan, asOf)
	if remaining == 0 {
		return fmt.Errorf("savings plan %s period already covered: %w", planID, storage.ErrAlreadyProcessed)
	}
	// The final capture takes only what closes the gap to the target, so
	// saved never overshoots it.
	if plan.TargetAmount > 0 {
		if toGoal := plan.TargetAmount - plan.Saved; toGoal < remaining {
			remaining = toGoal
		}
	}

	wallet, err := e.wallets.GetWallet(ctx, plan.UserID)
	if err != nil {
		return err
	}
	if wallet.Balance < remaining {
		return fmt.Errorf("savings plan %s: %w", planID, storage.ErrInsufficientFunds)
	}

	daysToWithdrawal := daysBetween(day, dateOf(plan.WithdrawalDate))
	interest := money.ProRata(daysToWithdrawal, money.SavingsDailyRate, remaining)

	plan.Payments = append(plan.Payments, models.PaymentEntry{Date: asOf, Amount: remaining, Paid: true})
	plan.Saved += remaining
	plan.Interest += interest
	plan.AllTimeSaved += remaining + interest
	if plan.Saved >= plan.TargetAmount {
		plan.GoalMet = true
	}

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    plan.UserID,
		Title:     "Savings Contribution",
		Amount:    remaining,
		Direction: models.DEBIT,
		Source:    models.SourceSavings,
		CreatedAt: time.Now(),
	}

	if err := e.store.UpdateSavingsPlan(ctx, plan, -remaining, activity); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, plan.UserID, "Savings Contribution",
		fmt.Sprintf("Your %s savings was funded with %d", plan.Category, remaining))
	return nil
}

// Mature pays out a plan whose withdrawal date has arrived: the wallet is
// credited with saved plus interest and the plan is reset to a fresh,
// inactive cycle. Plans that already paid out are skipped.
func (e *Engine) Mature(ctx context.Context, planID string, asOf time.Time) error {
	plan, err := e.store.GetSavingsPlan(ctx, planID)
	if err != nil {
		return err
	}

	if !plan.Active {
		return fmt.Errorf("savings plan %s: %w", planID, storage.ErrAlreadyProcessed)
	}
	if dateOf(plan.WithdrawalDate).After(dateOf(asOf)) {
		return fmt.Errorf("savings plan %s not yet matured: %w", planID, storage.ErrNotEligible)
	}

	payout := plan.Saved + plan.Interest
	resetPlan(plan)
	plan.Cycle++

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    plan.UserID,
		Title:     "Savings Payout",
		Amount:    payout,
		Direction: models.CREDIT,
		Source:    models.SourceSavings,
		CreatedAt: time.Now(),
	}

	if err := e.store.UpdateSavingsPlan(ctx, plan, payout, activity); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, plan.UserID, "Savings Payout",
		fmt.Sprintf("Your %s savings matured and %d was paid into your wallet", plan.Category, payout))
	return nil
}

// Cancel ends a plan before maturity. A 2% penalty is withheld from the
// saved amount and the remainder refunded. Cancelling an empty plan is not
// an error, it simply refunds nothing.
func (e *Engine) Cancel(ctx context.Context, planID, pin string, asOf time.Time) error {
	plan, err := e.store.GetSavingsPlan(ctx, planID)
	if err != nil {
		return err
	}
	if !plan.Active {
		return fmt.Errorf("savings plan %s: %w", planID, storage.ErrAlreadyProcessed)
	}

	wallet, err := e.wallets.GetWallet(ctx, plan.UserID)
	if err != nil {
		return err
	}
	if wallet.TransactionPin != pin {
		return fmt.Errorf("savings plan %s: %w", planID, storage.ErrInvalidPin)
	}

	penalty := money.Share(money.SavingsCancelPenaltyRate, plan.Saved)
	refund := plan.Saved - penalty
	resetPlan(plan)
	plan.CancelDate = asOf

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    plan.UserID,
		Title:     "Savings Cancel",
		Amount:    penalty,
		Direction: models.DEBIT,
		Source:    models.SourceSavings,
		CreatedAt: time.Now(),
	}

	if err := e.store.UpdateSavingsPlan(ctx, plan, refund, activity); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, plan.UserID, "Savings Cancelled",
		fmt.Sprintf("Your %s savings was cancelled. %d was refunded after a %d penalty", plan.Category, refund, penalty))
	return nil
}

// resetPlan zeroes a plan back to a fresh inactive cycle. AllTimeSaved is the
// lifetime figure and survives the reset.
func resetPlan(plan *models.SavingsPlan) {
	plan.Saved = 0
	plan.Interest = 0
	plan.GoalMet = false
	plan.Active = false
	plan.Payments = nil
	plan.StartDate = time.Time{}
	plan.WithdrawalDate = time.Time{}
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

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
