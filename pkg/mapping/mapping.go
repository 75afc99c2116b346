// Package mapping converts between domain models and API models.
package mapping

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Popsicool/wages-finance/pkg/api"
	"github.com/Popsicool/wages-finance/pkg/gateway"
	"github.com/Popsicool/wages-finance/pkg/models"
	"github.com/Popsicool/wages-finance/pkg/sweep"
)

// ToApiWallet converts a domain Wallet to an API Wallet. The transaction pin
// never crosses this boundary.
func ToApiWallet(wallet *models.Wallet) *api.Wallet {
	return &api.Wallet{
		UserId:  wallet.UserID,
		Balance: wallet.Balance,
		Version: wallet.Version,
	}
}

// ToApiActivity converts one audit trail entry. Every product's movements come
// out in the same uniform shape; Source is the discriminator.
func ToApiActivity(activity *models.AuditActivity) *api.Activity {
	return &api.Activity{
		Id:        parseUUID(activity.ID),
		UserId:    activity.UserID,
		Title:     activity.Title,
		Amount:    activity.Amount,
		Direction: string(activity.Direction),
		Source:    string(activity.Source),
		CreatedAt: activity.CreatedAt,
	}
}

// ToApiActivities converts a page of audit entries.
func ToApiActivities(activities []models.AuditActivity) []api.Activity {
	out := make([]api.Activity, 0, len(activities))
	for i := range activities {
		out = append(out, *ToApiActivity(&activities[i]))
	}
	return out
}

// ToApiSavingsPlan converts a domain SavingsPlan to an API SavingsPlan.
func ToApiSavingsPlan(plan *models.SavingsPlan) *api.SavingsPlan {
	return &api.SavingsPlan{
		Id:             parseUUID(plan.ID),
		UserId:         plan.UserID,
		Category:       string(plan.Category),
		TargetAmount:   plan.TargetAmount,
		Amount:         plan.Amount,
		Saved:          plan.Saved,
		Interest:       plan.Interest,
		AllTimeSaved:   plan.AllTimeSaved,
		Frequency:      string(plan.Frequency),
		StartDate:      toDate(plan.StartDate),
		WithdrawalDate: toDate(plan.WithdrawalDate),
		Cycle:          plan.Cycle,
		GoalMet:        plan.GoalMet,
		IsActive:       plan.Active,
	}
}

// ToDomainNewSavingsPlan converts an API NewSavingsPlan into a fresh domain
// plan ready for creation.
func ToDomainNewSavingsPlan(newPlan *api.NewSavingsPlan) *models.SavingsPlan {
	return &models.SavingsPlan{
		ID:             uuid.New().String(),
		UserID:         newPlan.UserId,
		Category:       models.SavingsCategory(newPlan.Category),
		TargetAmount:   newPlan.TargetAmount,
		Amount:         newPlan.Amount,
		Frequency:      models.SavingsFrequency(newPlan.Frequency),
		Hour:           newPlan.Hour,
		StartDate:      newPlan.StartDate.Time,
		WithdrawalDate: newPlan.WithdrawalDate.Time,
		Active:         true,
	}
}

// ToApiOffering converts a domain InvestmentOffering to an API InvestmentOffering.
func ToApiOffering(offering *models.InvestmentOffering) *api.InvestmentOffering {
	return &api.InvestmentOffering{
		Id:           parseUUID(offering.ID),
		Title:        offering.Title,
		Quota:        offering.Quota,
		Investors:    offering.Investors,
		InterestRate: offering.InterestRate,
		UnitShare:    offering.UnitShare,
		EndDate:      toDate(offering.EndDate),
		IsActive:     offering.Active,
	}
}

// ToApiPosition converts a domain InvestmentPosition to an API InvestmentPosition.
func ToApiPosition(position *models.InvestmentPosition) *api.InvestmentPosition {
	return &api.InvestmentPosition{
		Id:           parseUUID(position.ID),
		UserId:       position.UserID,
		OfferingId:   parseUUID(position.OfferingID),
		Shares:       position.Shares,
		Principal:    position.Principal,
		InterestRate: position.InterestRate,
		Interest:     position.Interest,
		Status:       string(position.Status),
		DueDate:      toDate(position.DueDate),
	}
}

// ToApiMembership converts a domain CooperativeMembership to its API shape.
func ToApiMembership(membership *models.CooperativeMembership) *api.CooperativeMembership {
	dividends := make([]api.DividendEntry, 0, len(membership.Dividends))
	for _, d := range membership.Dividends {
		dividends = append(dividends, api.DividendEntry{
			MonthKey:       d.MonthKey,
			ClosingBalance: d.ClosingBalance,
			Dividend:       d.Dividend,
			Paid:           d.Paid,
		})
	}
	return &api.CooperativeMembership{
		UserId:            membership.UserID,
		MembershipId:      membership.MembershipID,
		Balance:           membership.Balance,
		ProjectedDividend: membership.ProjectedDividend,
		Dividends:         dividends,
		IsActive:          membership.Active,
		JoinedAt:          membership.JoinedAt,
	}
}

// ToApiLoan converts a domain Loan to an API Loan.
func ToApiLoan(loan *models.Loan) *api.Loan {
	repayments := make([]api.RepaymentEntry, 0, len(loan.Repayments))
	for _, entry := range loan.Repayments {
		repayments = append(repayments, api.RepaymentEntry{
			DueDate: toDate(entry.DueDate),
			Amount:  entry.Amount,
			Paid:    entry.Paid,
		})
	}
	return &api.Loan{
		Id:               parseUUID(loan.ID),
		UserId:           loan.UserID,
		Principal:        loan.Principal,
		InterestRate:     loan.InterestRate,
		DurationInMonths: loan.DurationInMonths,
		Balance:          loan.Balance,
		AmountRepaid:     loan.AmountRepaid,
		Status:           string(loan.Status),
		Repayments:       repayments,
	}
}

// ToApiBank converts a gateway Bank to an API Bank.
func ToApiBank(bank gateway.Bank) api.Bank {
	return api.Bank{
		Name:       bank.Name,
		BankCode:   bank.BankCode,
		RoutingKey: bank.RoutingKey,
		CategoryId: bank.CategoryID,
	}
}

// ToApiSweepResult converts a sweep Summary to its API shape.
func ToApiSweepResult(summary sweep.Summary) *api.SweepResult {
	return &api.SweepResult{
		Processed: summary.Processed,
		Skipped:   summary.Skipped,
		Errors:    summary.Errors,
	}
}

func parseUUID(s string) openapi_types.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return openapi_types.UUID{}
	}
	return id
}

func toDate(t time.Time) openapi_types.Date {
	return openapi_types.Date{Time: t}
}
