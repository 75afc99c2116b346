// Package loan manages guarantor-backed loan accounts: request eligibility,
// approval with an upfront repayment schedule, scheduled and ad-hoc
// repayment capture, overdue detection and early liquidation.
package loan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Popsicool/wages-finance/pkg/models"
	"github.com/Popsicool/wages-finance/pkg/notify"
	"github.com/Popsicool/wages-finance/pkg/storage"
)

const (
	// DefaultInterestRate is the flat percentage charged over the loan's life.
	DefaultInterestRate int64 = 10

	// MinMembershipAge is how long a cooperative membership must have existed
	// before its holder can request a loan.
	MinMembershipAge = 6 * 30 * 24 * time.Hour

	// daysPerMonth is the schedule arithmetic the loan contracts use.
	daysPerMonth = 30
)

// Engine handles the business logic for loan accounts.
type Engine struct {
	store       storage.LoanStore
	wallets     storage.WalletStore
	memberships storage.CooperativeStore
	notifier    notify.Notifier
	logger      *slog.Logger
}

// NewEngine creates an Engine with the given stores and notification sink.
func NewEngine(store storage.LoanStore, wallets storage.WalletStore, memberships storage.CooperativeStore, notifier notify.Notifier, logger *slog.Logger) *Engine {
	return &Engine{store: store, wallets: wallets, memberships: memberships, notifier: notifier, logger: logger}
}

// Request opens a PENDING loan. The borrower must hold an active cooperative
// membership older than six months, and both guarantors must be active
// cooperative members distinct from the borrower and from each other.
func (e *Engine) Request(ctx context.Context, userID, guarantor1ID, guarantor2ID string, principal int64, durationInMonths int, asOf time.Time) (*models.Loan, error) {
	if principal <= 0 || durationInMonths <= 0 {
		return nil, fmt.Errorf("loan request needs a positive principal and duration: %w", storage.ErrNotEligible)
	}
	if guarantor1ID == userID || guarantor2ID == userID || guarantor1ID == guarantor2ID {
		return nil, fmt.Errorf("guarantors must be two distinct members other than the borrower: %w", storage.ErrNotEligible)
	}

	membership, err := e.memberships.GetMembership(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("borrower has no cooperative membership: %w", storage.ErrNotEligible)
	}
	if !membership.Active {
		return nil, fmt.Errorf("borrower's membership is inactive: %w", storage.ErrNotEligible)
	}
	if asOf.Sub(membership.JoinedAt) < MinMembershipAge {
		return nil, fmt.Errorf("membership younger than six months: %w", storage.ErrNotEligible)
	}

	for _, guarantorID := range []string{guarantor1ID, guarantor2ID} {
		guarantor, err := e.memberships.GetMembership(ctx, guarantorID)
		if err != nil || !guarantor.Active {
			return nil, fmt.Errorf("guarantor %s is not an active cooperative member: %w", guarantorID, storage.ErrNotEligible)
		}
	}

	loan := &models.Loan{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Guarantor1ID:       guarantor1ID,
		Guarantor2ID:       guarantor2ID,
		Guarantor1Approval: models.ApprovalPending,
		Guarantor2Approval: models.ApprovalPending,
		Principal:          principal,
		DurationInMonths:   durationInMonths,
		InterestRate:       DefaultInterestRate,
		Status:             models.LoanPending,
		DateRequested:      asOf,
		Active:             true,
	}

	return e.store.CreateLoan(ctx, loan)
}

// RespondAsGuarantor records a guarantor's decision. A single rejection
// rejects the whole loan.
func (e *Engine) RespondAsGuarantor(ctx context.Context, loanID, guarantorID string, approved bool) error {
	loan, err := e.store.GetLoan(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.Status != models.LoanPending {
		return fmt.Errorf("loan %s is not pending: %w", loanID, storage.ErrAlreadyProcessed)
	}

	decision := models.ApprovalApproved
	if !approved {
		decision = models.ApprovalRejected
	}

	switch guarantorID {
	case loan.Guarantor1ID:
		loan.Guarantor1Approval = decision
	case loan.Guarantor2ID:
		loan.Guarantor2Approval = decision
	default:
		return fmt.Errorf("user %s is not a guarantor on loan %s: %w", guarantorID, loanID, storage.ErrNotEligible)
	}

	if !approved {
		loan.Status = models.LoanRejected
		loan.Active = false
	}

	if err := e.store.UpdateLoan(ctx, loan, 0, nil); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, loan.UserID, "Loan Guarantor Response",
		fmt.Sprintf("A guarantor has %s your loan request", map[bool]string{true: "approved", false: "rejected"}[approved]))
	return nil
}

// Approve moves a PENDING loan to APPROVED once both guarantors have agreed:
// the balance becomes principal plus flat interest, the full repayment
// schedule is built upfront (equal monthly amounts, remainder folded into the
// last entry so the sum is exactly the balance), and the principal is
// disbursed into the borrower's wallet.
func (e *Engine) Approve(ctx context.Context, loanID string, asOf time.Time) error {
	loan, err := e.store.GetLoan(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.Status != models.LoanPending {
		return fmt.Errorf("loan %s is not pending: %w", loanID, storage.ErrAlreadyProcessed)
	}
	if loan.Guarantor1Approval != models.ApprovalApproved || loan.Guarantor2Approval != models.ApprovalApproved {
		return fmt.Errorf("loan %s lacks guarantor approval: %w", loanID, storage.ErrNotEligible)
	}

	total := loan.Principal + loan.TotalInterest()
	loan.Balance = total
	loan.Status = models.LoanApproved
	approvedAt := dateOf(asOf)
	loan.DateApproved = &approvedAt
	loan.Repayments = buildSchedule(approvedAt, total, loan.DurationInMonths)

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    loan.UserID,
		Title:     "Loan Disbursement",
		Amount:    loan.Principal,
		Direction: models.CREDIT,
		Source:    models.SourceLoan,
		CreatedAt: time.Now(),
	}

	if err := e.store.UpdateLoan(ctx, loan, loan.Principal, activity); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, loan.UserID, "Loan Approved",
		fmt.Sprintf("Your loan of %d was approved. Total repayable: %d over %d months", loan.Principal, total, loan.DurationInMonths))
	return nil
}

// Reject turns down a PENDING loan.
func (e *Engine) Reject(ctx context.Context, loanID, reason string) error {
	loan, err := e.store.GetLoan(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.Status != models.LoanPending {
		return fmt.Errorf("loan %s is not pending: %w", loanID, storage.ErrAlreadyProcessed)
	}

	loan.Status = models.LoanRejected
	loan.Active = false

	if err := e.store.UpdateLoan(ctx, loan, 0, nil); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, loan.UserID, "Loan Rejected",
		fmt.Sprintf("Your loan request of %d was rejected: %s", loan.Principal, reason))
	return nil
}

// CaptureScheduledRepayment settles the earliest unpaid schedule entry due by
// asOf. Insufficient funds is an expected condition the sweep retries later,
// reported as ErrInsufficientFunds without any state change. Overdue loans
// keep repaying.
func (e *Engine) CaptureScheduledRepayment(ctx context.Context, loanID string, asOf time.Time) error {
	loan, err := e.store.GetLoan(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.Status != models.LoanApproved && loan.Status != models.LoanOverdue {
		return fmt.Errorf("loan %s is not repayable: %w", loanID, storage.ErrAlreadyProcessed)
	}

	idx := -1
	day := dateOf(asOf)
	for i, entry := range loan.Repayments {
		if !entry.Paid && !dateOf(entry.DueDate).After(day) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("loan %s has nothing due: %w", loanID, storage.ErrAlreadyProcessed)
	}

	amount := loan.Repayments[idx].Amount
	wallet, err := e.wallets.GetWallet(ctx, loan.UserID)
	if err != nil {
		return err
	}
	if wallet.Balance < amount {
		return fmt.Errorf("loan %s repayment of %d: %w", loanID, amount, storage.ErrInsufficientFunds)
	}

	loan.Repayments[idx].Paid = true
	e.applyRepayment(loan, amount)

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    loan.UserID,
		Title:     "Loan Repayment",
		Amount:    amount,
		Direction: models.DEBIT,
		Source:    models.SourceLoan,
		CreatedAt: time.Now(),
	}

	if err := e.store.UpdateLoan(ctx, loan, -amount, activity); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, loan.UserID, "Loan Repayment",
		fmt.Sprintf("A scheduled repayment of %d was captured. Outstanding balance: %d", amount, loan.Balance))
	return nil
}

// DetectOverdue flags an APPROVED loan past its full term as OVERDUE. The
// flag is a reporting overlay: repayment capture keeps running against it.
// Returns whether the loan is overdue.
func (e *Engine) DetectOverdue(ctx context.Context, loanID string, asOf time.Time) (bool, error) {
	loan, err := e.store.GetLoan(ctx, loanID)
	if err != nil {
		return false, err
	}
	if loan.Status == models.LoanOverdue {
		return true, nil
	}
	if loan.Status != models.LoanApproved {
		return false, nil
	}

	due := loan.DueDate()
	if due == nil || !dateOf(asOf).After(dateOf(*due)) {
		return false, nil
	}

	loan.Status = models.LoanOverdue
	if err := e.store.UpdateLoan(ctx, loan, 0, nil); err != nil {
		return false, err
	}

	e.notifyBestEffort(ctx, loan.UserID, "Loan Overdue",
		fmt.Sprintf("Your loan is past due with %d outstanding", loan.Balance))
	return true, nil
}

// Liquidate settles every outstanding schedule entry in one shot: the exact
// outstanding sum is debited and the loan closes as REPAYED.
func (e *Engine) Liquidate(ctx context.Context, loanID, pin string) error {
	loan, err := e.store.GetLoan(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.Status != models.LoanApproved && loan.Status != models.LoanOverdue {
		return fmt.Errorf("loan %s is not repayable: %w", loanID, storage.ErrAlreadyProcessed)
	}

	wallet, err := e.wallets.GetWallet(ctx, loan.UserID)
	if err != nil {
		return err
	}
	if wallet.TransactionPin != pin {
		return fmt.Errorf("loan %s liquidation: %w", loanID, storage.ErrInvalidPin)
	}

	outstanding := loan.Outstanding()
	if outstanding == 0 {
		return fmt.Errorf("loan %s has nothing outstanding: %w", loanID, storage.ErrAlreadyProcessed)
	}
	if wallet.Balance < outstanding {
		return fmt.Errorf("loan %s liquidation of %d: %w", loanID, outstanding, storage.ErrInsufficientFunds)
	}

	for i := range loan.Repayments {
		loan.Repayments[i].Paid = true
	}
	e.applyRepayment(loan, outstanding)

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    loan.UserID,
		Title:     "Loan Liquidation",
		Amount:    outstanding,
		Direction: models.DEBIT,
		Source:    models.SourceLoan,
		CreatedAt: time.Now(),
	}

	if err := e.store.UpdateLoan(ctx, loan, -outstanding, activity); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, loan.UserID, "Loan Liquidated",
		fmt.Sprintf("Your loan was fully settled with a payment of %d", outstanding))
	return nil
}

// RepaySelected settles an explicit subset of outstanding schedule entries.
// The whole batch is validated before any mutation: every index must exist,
// be unpaid and be distinct, and the summed amount must be covered by the
// wallet. All-or-nothing.
func (e *Engine) RepaySelected(ctx context.Context, loanID string, indices []int) error {
	loan, err := e.store.GetLoan(ctx, loanID)
	if err != nil {
		return err
	}
	if loan.Status != models.LoanApproved && loan.Status != models.LoanOverdue {
		return fmt.Errorf("loan %s is not repayable: %w", loanID, storage.ErrAlreadyProcessed)
	}

	var total int64
	seen := make(map[int]bool, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(loan.Repayments) {
			return fmt.Errorf("loan %s repayment index %d: %w", loanID, idx, storage.ErrIndexOutOfRange)
		}
		if loan.Repayments[idx].Paid || seen[idx] {
			return fmt.Errorf("loan %s repayment index %d: %w", loanID, idx, storage.ErrAlreadyPaid)
		}
		seen[idx] = true
		total += loan.Repayments[idx].Amount
	}
	if total == 0 {
		return fmt.Errorf("loan %s: empty repayment selection: %w", loanID, storage.ErrNotEligible)
	}

	wallet, err := e.wallets.GetWallet(ctx, loan.UserID)
	if err != nil {
		return err
	}
	if wallet.Balance < total {
		return fmt.Errorf("loan %s selected repayment of %d: %w", loanID, total, storage.ErrInsufficientFunds)
	}

	for idx := range seen {
		loan.Repayments[idx].Paid = true
	}
	e.applyRepayment(loan, total)

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    loan.UserID,
		Title:     "Loan Repayment",
		Amount:    total,
		Direction: models.DEBIT,
		Source:    models.SourceLoan,
		CreatedAt: time.Now(),
	}

	if err := e.store.UpdateLoan(ctx, loan, -total, activity); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, loan.UserID, "Loan Repayment",
		fmt.Sprintf("A repayment of %d was captured. Outstanding balance: %d", total, loan.Balance))
	return nil
}

// applyRepayment moves amount from the schedule into the repaid figures and
// closes the loan when nothing is outstanding.
func (e *Engine) applyRepayment(loan *models.Loan, amount int64) {
	loan.Balance -= amount
	loan.AmountRepaid += amount
	if loan.Outstanding() == 0 {
		loan.Status = models.LoanRepayed
		loan.Balance = 0
		loan.Active = false
	}
}

// buildSchedule lays out the full repayment plan at approval time: one entry
// per month, equal amounts, with the division remainder folded into the last
// entry so the entries sum to exactly the total.
func buildSchedule(approvedAt time.Time, total int64, months int) []models.RepaymentEntry {
	per := total / int64(months)
	entries := make([]models.RepaymentEntry, months)
	for i := 0; i < months; i++ {
		amount := per
		if i == months-1 {
			amount = total - per*int64(months-1)
		}
		entries[i] = models.RepaymentEntry{
			DueDate: approvedAt.AddDate(0, 0, (i+1)*daysPerMonth),
			Amount:  amount,
			Paid:    false,
		}
	}
	return entries
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
