// Package sweep orchestrates the periodic reconciliation passes that advance
// every financial product to its current state: repayment capture, overdue
// flagging, offering expiry, position and savings maturity, month-end
// dividends and contribution capture.
package sweep

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Popsicool/wages-finance/pkg/cooperative"
	"github.com/Popsicool/wages-finance/pkg/investment"
	"github.com/Popsicool/wages-finance/pkg/loan"
	"github.com/Popsicool/wages-finance/pkg/models"
	"github.com/Popsicool/wages-finance/pkg/savings"
	"github.com/Popsicool/wages-finance/pkg/storage"
)

// Summary counts what a sweep pass did. Skipped covers records that were
// already settled or not yet eligible; Errors counts genuine failures.
type Summary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

func (s *Summary) add(other Summary) {
	s.Processed += other.Processed
	s.Skipped += other.Skipped
	s.Errors += other.Errors
}

// Sweeper drives the engines over everything the store says is due.
type Sweeper struct {
	store       storage.SweepStore
	savings     *savings.Engine
	investments *investment.Engine
	cooperative *cooperative.Engine
	loans       *loan.Engine
	logger      *slog.Logger
}

// NewSweeper creates a Sweeper over the given store and engines.
func NewSweeper(store storage.SweepStore, sav *savings.Engine, inv *investment.Engine, coop *cooperative.Engine, ln *loan.Engine, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{store: store, savings: sav, investments: inv, cooperative: coop, loans: ln, logger: logger}
}

// RunDailySweep executes one full reconciliation pass. Money leaves wallets
// before money arrives: repayments are captured ahead of payouts so a wallet
// is never credited in a state that lets a due debit slip the pass. Each
// record settles or fails on its own; one failure never stops the batch, and
// the whole pass is safe to re-run.
func (s *Sweeper) RunDailySweep(ctx context.Context, now time.Time) Summary {
	s.logger.Info("starting daily sweep", "as_of", now.Format(time.RFC3339))

	var total Summary
	total.add(s.captureLoanRepayments(ctx, now))
	total.add(s.detectOverdueLoans(ctx, now))
	total.add(s.expireOfferings(ctx, now))
	total.add(s.maturePositions(ctx, now))
	total.add(s.matureSavings(ctx, now))
	total.add(s.snapshotDividends(ctx, now))
	total.add(s.captureSavingsContributions(ctx, now, false))

	s.logger.Info("daily sweep finished",
		"processed", total.Processed, "skipped", total.Skipped, "errors", total.Errors)
	return total
}

// RunHourlySweep captures savings contributions for plans whose preferred
// hour matches now. Plans a prior run already covered for the period come
// back as skips.
func (s *Sweeper) RunHourlySweep(ctx context.Context, now time.Time) Summary {
	s.logger.Info("starting hourly sweep", "hour", now.Hour())

	total := s.captureSavingsContributions(ctx, now, true)

	s.logger.Info("hourly sweep finished",
		"processed", total.Processed, "skipped", total.Skipped, "errors", total.Errors)
	return total
}

func (s *Sweeper) captureLoanRepayments(ctx context.Context, now time.Time) Summary {
	var sum Summary
	loans, err := s.store.ListLoansByStatus(ctx, models.LoanApproved, models.LoanOverdue)
	if err != nil {
		s.logger.Error("failed to list repayable loans", "error", err)
		sum.Errors++
		return sum
	}

	for _, l := range loans {
		err := s.loans.CaptureScheduledRepayment(ctx, l.ID, now)
		s.record(&sum, "loan repayment", l.ID, err)
	}
	return sum
}

func (s *Sweeper) detectOverdueLoans(ctx context.Context, now time.Time) Summary {
	var sum Summary
	loans, err := s.store.ListLoansByStatus(ctx, models.LoanApproved)
	if err != nil {
		s.logger.Error("failed to list approved loans", "error", err)
		sum.Errors++
		return sum
	}

	for _, l := range loans {
		overdue, err := s.loans.DetectOverdue(ctx, l.ID, now)
		switch {
		case err != nil:
			s.record(&sum, "overdue detection", l.ID, err)
		case overdue:
			sum.Processed++
		default:
			sum.Skipped++
		}
	}
	return sum
}

func (s *Sweeper) expireOfferings(ctx context.Context, now time.Time) Summary {
	var sum Summary
	offerings, err := s.store.ListExpiredOfferings(ctx, now)
	if err != nil {
		s.logger.Error("failed to list expired offerings", "error", err)
		sum.Errors++
		return sum
	}

	for _, o := range offerings {
		err := s.investments.ExpireOffering(ctx, o.ID, now)
		s.record(&sum, "offering expiry", o.ID, err)
	}
	return sum
}

func (s *Sweeper) maturePositions(ctx context.Context, now time.Time) Summary {
	var sum Summary
	positions, err := s.store.ListMaturablePositions(ctx, now)
	if err != nil {
		s.logger.Error("failed to list maturable positions", "error", err)
		sum.Errors++
		return sum
	}

	for _, p := range positions {
		err := s.investments.Mature(ctx, p.ID, now)
		s.record(&sum, "position maturity", p.ID, err)
	}
	return sum
}

func (s *Sweeper) matureSavings(ctx context.Context, now time.Time) Summary {
	var sum Summary
	plans, err := s.store.ListMaturedPlans(ctx, now)
	if err != nil {
		s.logger.Error("failed to list matured savings plans", "error", err)
		sum.Errors++
		return sum
	}

	for _, p := range plans {
		err := s.savings.Mature(ctx, p.ID, now)
		s.record(&sum, "savings maturity", p.ID, err)
	}
	return sum
}

func (s *Sweeper) snapshotDividends(ctx context.Context, now time.Time) Summary {
	var sum Summary
	if !isLastDayOfMonth(now) {
		return sum
	}

	memberships, err := s.store.ListActiveMemberships(ctx)
	if err != nil {
		s.logger.Error("failed to list active memberships", "error", err)
		sum.Errors++
		return sum
	}

	for _, m := range memberships {
		err := s.cooperative.SnapshotMonthEndDividend(ctx, m.UserID, now)
		s.record(&sum, "dividend snapshot", m.UserID, err)
	}
	return sum
}

func (s *Sweeper) captureSavingsContributions(ctx context.Context, now time.Time, matchHour bool) Summary {
	var sum Summary
	plans, err := s.store.ListContributablePlans(ctx, now)
	if err != nil {
		s.logger.Error("failed to list contributable savings plans", "error", err)
		sum.Errors++
		return sum
	}

	for _, p := range plans {
		if matchHour && p.Hour != now.Hour() {
			sum.Skipped++
			continue
		}
		err := s.savings.CaptureContribution(ctx, p.ID, now)
		s.record(&sum, "savings contribution", p.ID, err)
	}
	return sum
}

// record folds one per-record outcome into the summary. Already-processed,
// not-yet-eligible and insufficient-funds results are expected states of a
// repeated pass, not failures.
func (s *Sweeper) record(sum *Summary, step, id string, err error) {
	switch {
	case err == nil:
		sum.Processed++
	case errors.Is(err, storage.ErrAlreadyProcessed),
		errors.Is(err, storage.ErrNotEligible),
		errors.Is(err, storage.ErrInsufficientFunds):
		s.logger.Debug("sweep skip", "step", step, "id", id, "reason", err)
		sum.Skipped++
	default:
		s.logger.Error("sweep failure", "step", step, "id", id, "error", err)
		sum.Errors++
	}
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}
