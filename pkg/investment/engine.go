// Package investment manages investment offerings and user positions:
// subscription, maturity, expiry, withdrawal and early cancellation.
package investment

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

// Engine handles the business logic for investment offerings and positions.
type Engine struct {
	store    storage.InvestmentStore
	wallets  storage.WalletStore
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewEngine creates an Engine with the given stores and notification sink.
func NewEngine(store storage.InvestmentStore, wallets storage.WalletStore, notifier notify.Notifier, logger *slog.Logger) *Engine {
	return &Engine{store: store, wallets: wallets, notifier: notifier, logger: logger}
}

// Subscribe opens a position on an active offering: the principal
// (shares * unit price) is debited from the wallet, quota is consumed and the
// offering's rate is frozen on the position. One open position per
// (user, offering); re-subscribing after a withdrawal starts a new cycle.
func (e *Engine) Subscribe(ctx context.Context, userID, offeringID string, shares int64, asOf time.Time) (*models.InvestmentPosition, error) {
	offering, err := e.store.GetOffering(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	if !offering.Active || dateOf(offering.EndDate).Before(dateOf(asOf)) {
		return nil, fmt.Errorf("offering %s is closed: %w", offeringID, storage.ErrNotEligible)
	}
	if shares <= 0 || shares > offering.Quota {
		return nil, fmt.Errorf("offering %s cannot fill %d shares: %w", offeringID, shares, storage.ErrNotEligible)
	}

	principal := shares * offering.UnitShare
	wallet, err := e.wallets.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet.Balance < principal {
		return nil, fmt.Errorf("subscription to offering %s: %w", offeringID, storage.ErrInsufficientFunds)
	}

	position := &models.InvestmentPosition{
		ID:           uuid.New().String(),
		UserID:       userID,
		OfferingID:   offeringID,
		Shares:       shares,
		Principal:    principal,
		InterestRate: offering.InterestRate,
		Status:       models.InvestmentActive,
		DueDate:      offering.EndDate,
	}

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     "Investment Subscription",
		Amount:    principal,
		Direction: models.DEBIT,
		Source:    models.SourceInvestment,
		CreatedAt: time.Now(),
	}

	if err := e.store.CreatePosition(ctx, position, offering, activity); err != nil {
		return nil, err
	}

	e.notifyBestEffort(ctx, userID, "Investment Subscription",
		fmt.Sprintf("You bought %d shares of %s for %d", shares, offering.Title, principal))
	return position, nil
}

// Mature fixes the interest on a position whose due date has arrived and
// moves it to MATURED. Pure state transition: the payout stays parked until
// the user withdraws it.
func (e *Engine) Mature(ctx context.Context, positionID string, asOf time.Time) error {
	position, err := e.store.GetPosition(ctx, positionID)
	if err != nil {
		return err
	}

	if position.Status != models.InvestmentActive {
		return fmt.Errorf("position %s: %w", positionID, storage.ErrAlreadyProcessed)
	}
	if dateOf(position.DueDate).After(dateOf(asOf)) {
		return fmt.Errorf("position %s not yet due: %w", positionID, storage.ErrNotEligible)
	}

	position.Interest = money.PercentOf(position.Principal, position.InterestRate)
	position.Status = models.InvestmentMatured

	if err := e.store.UpdatePosition(ctx, position, 0, nil); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, position.UserID, "Investment Matured",
		fmt.Sprintf("Your investment matured with %d interest, payout %d", position.Interest, position.Payout()))
	return nil
}

// Withdraw pays a MATURED position (principal plus interest) into the wallet
// and closes it.
func (e *Engine) Withdraw(ctx context.Context, positionID string) error {
	position, err := e.store.GetPosition(ctx, positionID)
	if err != nil {
		return err
	}
	if position.Status != models.InvestmentMatured {
		if position.Status == models.InvestmentWithdrawn {
			return fmt.Errorf("position %s: %w", positionID, storage.ErrAlreadyProcessed)
		}
		return fmt.Errorf("position %s is not matured: %w", positionID, storage.ErrNotEligible)
	}

	payout := position.Payout()
	position.Status = models.InvestmentWithdrawn

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    position.UserID,
		Title:     "Investment Payout",
		Amount:    payout,
		Direction: models.CREDIT,
		Source:    models.SourceInvestment,
		CreatedAt: time.Now(),
	}

	if err := e.store.UpdatePosition(ctx, position, payout, activity); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, position.UserID, "Investment Payout",
		fmt.Sprintf("Your matured investment paid %d into your wallet", payout))
	return nil
}

// CancelEarly closes an ACTIVE position before maturity. The principal is
// refunded with no interest and the shares return to the offering's quota so
// they can be resold while the offering is live.
func (e *Engine) CancelEarly(ctx context.Context, positionID string) error {
	position, err := e.store.GetPosition(ctx, positionID)
	if err != nil {
		return err
	}
	if position.Status != models.InvestmentActive {
		return fmt.Errorf("position %s: %w", positionID, storage.ErrAlreadyProcessed)
	}

	offering, err := e.store.GetOffering(ctx, position.OfferingID)
	if err != nil {
		return err
	}

	// The quota restore rides in the same commit as the position close and
	// the refund; a closed offering keeps its books as they are.
	var restoreTo *models.InvestmentOffering
	if offering.Active {
		offering.Quota += position.Shares
		offering.Investors--
		restoreTo = offering
	}

	refund := position.Principal
	position.Status = models.InvestmentWithdrawn

	activity := &models.AuditActivity{
		ID:        uuid.New().String(),
		UserID:    position.UserID,
		Title:     "Investment Cancelled",
		Amount:    refund,
		Direction: models.CREDIT,
		Source:    models.SourceInvestment,
		CreatedAt: time.Now(),
	}

	if err := e.store.CancelPosition(ctx, position, restoreTo, refund, activity); err != nil {
		return err
	}

	e.notifyBestEffort(ctx, position.UserID, "Investment Cancelled",
		fmt.Sprintf("Your investment was cancelled and %d refunded", refund))
	return nil
}

// ExpireOffering closes an active offering whose end date has passed. Open
// positions on it are untouched.
func (e *Engine) ExpireOffering(ctx context.Context, offeringID string, asOf time.Time) error {
	offering, err := e.store.GetOffering(ctx, offeringID)
	if err != nil {
		return err
	}
	if !offering.Active {
		return fmt.Errorf("offering %s: %w", offeringID, storage.ErrAlreadyProcessed)
	}
	if dateOf(offering.EndDate).After(dateOf(asOf)) {
		return fmt.Errorf("offering %s not yet ended: %w", offeringID, storage.ErrNotEligible)
	}

	offering.Active = false
	return e.store.UpdateOffering(ctx, offering)
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
