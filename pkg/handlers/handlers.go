// Package handlers exposes the operational HTTP surface: wallet and audit
// reads, the user-triggered engine operations and the manual sweep triggers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Popsicool/wages-finance/pkg/api"
	"github.com/Popsicool/wages-finance/pkg/cooperative"
	"github.com/Popsicool/wages-finance/pkg/gateway"
	"github.com/Popsicool/wages-finance/pkg/investment"
	"github.com/Popsicool/wages-finance/pkg/loan"
	"github.com/Popsicool/wages-finance/pkg/mapping"
	"github.com/Popsicool/wages-finance/pkg/models"
	"github.com/Popsicool/wages-finance/pkg/savings"
	"github.com/Popsicool/wages-finance/pkg/storage"
	"github.com/Popsicool/wages-finance/pkg/sweep"
)

const defaultActivityPageSize = 50

// ApiHandler holds the application's dependencies for the HTTP surface.
type ApiHandler struct {
	Store       storage.Storage
	Savings     *savings.Engine
	Investments *investment.Engine
	Cooperative *cooperative.Engine
	Loans       *loan.Engine
	Sweeper     *sweep.Sweeper
	Banks       *gateway.Registry
}

// NewApiHandler creates a new ApiHandler with its dependencies.
func NewApiHandler(store storage.Storage, sav *savings.Engine, inv *investment.Engine, coop *cooperative.Engine, ln *loan.Engine, sweeper *sweep.Sweeper, banks *gateway.Registry) *ApiHandler {
	return &ApiHandler{
		Store:       store,
		Savings:     sav,
		Investments: inv,
		Cooperative: coop,
		Loans:       ln,
		Sweeper:     sweeper,
		Banks:       banks,
	}
}

// Routes mounts every endpoint on a chi router.
func (h *ApiHandler) Routes(r chi.Router) {
	r.Post("/wallets", h.CreateWallet)
	r.Get("/wallets/{userId}", h.GetWalletByUserId)
	r.Get("/wallets/{userId}/activities", h.ListActivities)

	r.Post("/savings", h.CreateSavingsPlan)
	r.Get("/savings/{planId}", h.GetSavingsPlan)
	r.Post("/savings/{planId}/contribute", h.ContributeToSavings)
	r.Post("/savings/{planId}/cancel", h.CancelSavings)

	r.Get("/offerings/{offeringId}", h.GetOffering)
	r.Post("/offerings/{offeringId}/subscribe", h.SubscribeToOffering)
	r.Post("/positions/{positionId}/withdraw", h.WithdrawPosition)
	r.Post("/positions/{positionId}/cancel", h.CancelPosition)

	r.Get("/cooperative/{userId}", h.GetMembership)
	r.Post("/cooperative/{userId}/contribute", h.ContributeToCooperative)

	r.Post("/loans", h.RequestLoan)
	r.Get("/loans/{loanId}", h.GetLoan)
	r.Post("/loans/{loanId}/guarantor-response", h.RespondAsGuarantor)
	r.Post("/loans/{loanId}/approve", h.ApproveLoan)
	r.Post("/loans/{loanId}/reject", h.RejectLoan)
	r.Post("/loans/{loanId}/liquidate", h.LiquidateLoan)
	r.Post("/loans/{loanId}/repay", h.RepaySelected)

	r.Get("/banks", h.ListBanks)

	r.Post("/sweeps/daily", h.TriggerDailySweep)
	r.Post("/sweeps/hourly", h.TriggerHourlySweep)
}

// CreateWallet handles the logic for creating a new wallet.
func (h *ApiHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	var newWallet api.NewWallet
	if err := json.NewDecoder(r.Body).Decode(&newWallet); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	created, err := h.Store.CreateWallet(r.Context(), &models.Wallet{UserID: newWallet.UserId})
	if err != nil {
		writeDomainError(w, "Failed to create wallet", err)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiWallet(created))
}

// GetWalletByUserId handles the logic for retrieving a user's wallet.
func (h *ApiHandler) GetWalletByUserId(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	wallet, err := h.Store.GetWallet(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "Failed to retrieve wallet", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiWallet(wallet))
}

// ListActivities returns the most recent audit trail entries for a user.
func (h *ApiHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	activities, err := h.Store.ListActivitiesByUser(r.Context(), userID, defaultActivityPageSize)
	if err != nil {
		writeDomainError(w, "Failed to retrieve activities", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiActivities(activities))
}

// CreateSavingsPlan opens a new recurring savings plan.
func (h *ApiHandler) CreateSavingsPlan(w http.ResponseWriter, r *http.Request) {
	var newPlan api.NewSavingsPlan
	if err := json.NewDecoder(r.Body).Decode(&newPlan); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	created, err := h.Store.CreateSavingsPlan(r.Context(), mapping.ToDomainNewSavingsPlan(&newPlan))
	if err != nil {
		writeDomainError(w, "Failed to create savings plan", err)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiSavingsPlan(created))
}

// GetSavingsPlan retrieves a savings plan by ID.
func (h *ApiHandler) GetSavingsPlan(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planId")

	plan, err := h.Store.GetSavingsPlan(r.Context(), planID)
	if err != nil {
		writeDomainError(w, "Failed to retrieve savings plan", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiSavingsPlan(plan))
}

// ContributeToSavings captures the current period's contribution immediately
// instead of waiting for the sweep.
func (h *ApiHandler) ContributeToSavings(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planId")

	if err := h.Savings.CaptureContribution(r.Context(), planID, time.Now()); err != nil {
		writeDomainError(w, "Failed to capture contribution", err)
		return
	}

	plan, err := h.Store.GetSavingsPlan(r.Context(), planID)
	if err != nil {
		writeDomainError(w, "Failed to retrieve savings plan", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiSavingsPlan(plan))
}

// CancelSavings ends a plan early, refunding the saved amount less the penalty.
func (h *ApiHandler) CancelSavings(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "planId")

	var req api.CancelSavingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Savings.Cancel(r.Context(), planID, req.Pin, time.Now()); err != nil {
		writeDomainError(w, "Failed to cancel savings plan", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetOffering retrieves an investment offering by ID.
func (h *ApiHandler) GetOffering(w http.ResponseWriter, r *http.Request) {
	offeringID := chi.URLParam(r, "offeringId")

	offering, err := h.Store.GetOffering(r.Context(), offeringID)
	if err != nil {
		writeDomainError(w, "Failed to retrieve offering", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiOffering(offering))
}

// SubscribeToOffering buys shares in an offering for a user.
func (h *ApiHandler) SubscribeToOffering(w http.ResponseWriter, r *http.Request) {
	offeringID := chi.URLParam(r, "offeringId")

	var req api.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	position, err := h.Investments.Subscribe(r.Context(), req.UserId, offeringID, req.Shares, time.Now())
	if err != nil {
		writeDomainError(w, "Failed to subscribe", err)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiPosition(position))
}

// WithdrawPosition pays out a matured position into the owner's wallet.
func (h *ApiHandler) WithdrawPosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "positionId")

	if err := h.Investments.Withdraw(r.Context(), positionID); err != nil {
		writeDomainError(w, "Failed to withdraw position", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CancelPosition closes an active position early, refunding the principal.
func (h *ApiHandler) CancelPosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "positionId")

	if err := h.Investments.CancelEarly(r.Context(), positionID); err != nil {
		writeDomainError(w, "Failed to cancel position", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetMembership retrieves a user's cooperative membership.
func (h *ApiHandler) GetMembership(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	membership, err := h.Store.GetMembership(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "Failed to retrieve membership", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiMembership(membership))
}

// ContributeToCooperative moves wallet funds into the member's pooled balance.
func (h *ApiHandler) ContributeToCooperative(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	var req api.ContributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Cooperative.AccrueContribution(r.Context(), userID, req.Amount, time.Now()); err != nil {
		writeDomainError(w, "Failed to record contribution", err)
		return
	}

	membership, err := h.Store.GetMembership(r.Context(), userID)
	if err != nil {
		writeDomainError(w, "Failed to retrieve membership", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiMembership(membership))
}

// RequestLoan opens a PENDING loan request.
func (h *ApiHandler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	var req api.NewLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	created, err := h.Loans.Request(r.Context(), req.UserId, req.Guarantor1Id, req.Guarantor2Id, req.Principal, req.DurationInMonths, time.Now())
	if err != nil {
		writeDomainError(w, "Failed to request loan", err)
		return
	}

	respondJSON(w, http.StatusCreated, mapping.ToApiLoan(created))
}

// GetLoan retrieves a loan by ID.
func (h *ApiHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanId")

	l, err := h.Store.GetLoan(r.Context(), loanID)
	if err != nil {
		writeDomainError(w, "Failed to retrieve loan", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiLoan(l))
}

// RespondAsGuarantor records a guarantor's approval or rejection of a
// pending loan.
func (h *ApiHandler) RespondAsGuarantor(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanId")

	var req api.GuarantorResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Loans.RespondAsGuarantor(r.Context(), loanID, req.GuarantorId, req.Approved); err != nil {
		writeDomainError(w, "Failed to record guarantor response", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ApproveLoan approves a pending loan and disburses the principal.
func (h *ApiHandler) ApproveLoan(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanId")

	if err := h.Loans.Approve(r.Context(), loanID, time.Now()); err != nil {
		writeDomainError(w, "Failed to approve loan", err)
		return
	}

	l, err := h.Store.GetLoan(r.Context(), loanID)
	if err != nil {
		writeDomainError(w, "Failed to retrieve loan", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiLoan(l))
}

// RejectLoan declines a pending loan.
func (h *ApiHandler) RejectLoan(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanId")

	var req api.RejectLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Loans.Reject(r.Context(), loanID, req.Reason); err != nil {
		writeDomainError(w, "Failed to reject loan", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// LiquidateLoan pays off every outstanding schedule entry at once.
func (h *ApiHandler) LiquidateLoan(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanId")

	var req api.LiquidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Loans.Liquidate(r.Context(), loanID, req.Pin); err != nil {
		writeDomainError(w, "Failed to liquidate loan", err)
		return
	}

	l, err := h.Store.GetLoan(r.Context(), loanID)
	if err != nil {
		writeDomainError(w, "Failed to retrieve loan", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiLoan(l))
}

// RepaySelected settles an explicit set of schedule entries, all or nothing.
func (h *ApiHandler) RepaySelected(w http.ResponseWriter, r *http.Request) {
	loanID := chi.URLParam(r, "loanId")

	var req api.RepaySelectedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.Loans.RepaySelected(r.Context(), loanID, req.Indices); err != nil {
		writeDomainError(w, "Failed to repay selection", err)
		return
	}

	l, err := h.Store.GetLoan(r.Context(), loanID)
	if err != nil {
		writeDomainError(w, "Failed to retrieve loan", err)
		return
	}

	respondJSON(w, http.StatusOK, mapping.ToApiLoan(l))
}

// ListBanks returns the supported payout banks.
func (h *ApiHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks := h.Banks.List()
	out := make([]api.Bank, 0, len(banks))
	for _, b := range banks {
		out = append(out, mapping.ToApiBank(b))
	}
	respondJSON(w, http.StatusOK, out)
}

// TriggerDailySweep runs the full daily reconciliation pass on demand.
func (h *ApiHandler) TriggerDailySweep(w http.ResponseWriter, r *http.Request) {
	summary := h.Sweeper.RunDailySweep(r.Context(), time.Now())
	respondJSON(w, http.StatusOK, mapping.ToApiSweepResult(summary))
}

// TriggerHourlySweep runs the hourly contribution pass on demand.
func (h *ApiHandler) TriggerHourlySweep(w http.ResponseWriter, r *http.Request) {
	summary := h.Sweeper.RunHourlySweep(r.Context(), time.Now())
	respondJSON(w, http.StatusOK, mapping.ToApiSweepResult(summary))
}

// writeDomainError maps the sentinel errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, prefix string, err error) {
	switch {
	case errors.Is(err, storage.ErrInsufficientFunds):
		http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
	case errors.Is(err, storage.ErrInvalidPin):
		http.Error(w, "Invalid transaction pin", http.StatusForbidden)
	case errors.Is(err, storage.ErrAlreadyProcessed), errors.Is(err, storage.ErrAlreadyPaid), errors.Is(err, storage.ErrVersionConflict):
		http.Error(w, fmt.Sprintf("%s: %v", prefix, err), http.StatusConflict)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, fmt.Sprintf("%s: %v", prefix, err), http.StatusNotFound)
	case errors.Is(err, storage.ErrNotEligible), errors.Is(err, storage.ErrIndexOutOfRange):
		http.Error(w, fmt.Sprintf("%s: %v", prefix, err), http.StatusUnprocessableEntity)
	default:
		http.Error(w, fmt.Sprintf("%s: %v", prefix, err), http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
