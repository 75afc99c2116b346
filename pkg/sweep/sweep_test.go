package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Popsicool/wages-finance/pkg/cooperative"
	"github.com/Popsicool/wages-finance/pkg/investment"
	"github.com/Popsicool/wages-finance/pkg/loan"
	"github.com/Popsicool/wages-finance/pkg/models"
	"github.com/Popsicool/wages-finance/pkg/savings"
	"github.com/Popsicool/wages-finance/pkg/storage/mocks"
)

func newSweeper(mockStore *mocks.Storage) *Sweeper {
	savingsEngine := savings.NewEngine(mockStore, mockStore, nil, nil)
	investmentEngine := investment.NewEngine(mockStore, mockStore, nil, nil)
	cooperativeEngine := cooperative.NewEngine(mockStore, mockStore, nil, nil)
	loanEngine := loan.NewEngine(mockStore, mockStore, mockStore, nil, nil)
	return NewSweeper(mockStore, savingsEngine, investmentEngine, cooperativeEngine, loanEngine, nil)
}

// emptyLists stubs every sweep query to return nothing.
func emptyLists(mockStore *mocks.Storage) {
	mockStore.On("ListLoansByStatus", mock.Anything, models.LoanApproved, models.LoanOverdue).Return([]models.Loan{}, nil)
	mockStore.On("ListLoansByStatus", mock.Anything, models.LoanApproved).Return([]models.Loan{}, nil)
	mockStore.On("ListExpiredOfferings", mock.Anything, mock.Anything).Return([]models.InvestmentOffering{}, nil)
	mockStore.On("ListMaturablePositions", mock.Anything, mock.Anything).Return([]models.InvestmentPosition{}, nil)
	mockStore.On("ListMaturedPlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{}, nil)
	mockStore.On("ListContributablePlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{}, nil)
}

func contributablePlan(id string) models.SavingsPlan {
	return models.SavingsPlan{
		ID:             id,
		UserID:         "user-" + id,
		TargetAmount:   100000,
		Amount:         1000,
		Frequency:      models.FrequencyDaily,
		Hour:           9,
		StartDate:      time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		WithdrawalDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Active:         true,
		Version:        1,
	}
}

func TestRunDailySweep(t *testing.T) {
	now := time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)

	t.Run("Nothing Due", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		emptyLists(mockStore)

		summary := newSweeper(mockStore).RunDailySweep(context.Background(), now)

		assert.Equal(t, Summary{}, summary)
		mockStore.AssertExpectations(t)
	})

	t.Run("One Failure Does Not Stop The Batch", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		planA := contributablePlan("plan-a")
		planB := contributablePlan("plan-b")
		mockStore.On("ListLoansByStatus", mock.Anything, models.LoanApproved, models.LoanOverdue).Return([]models.Loan{}, nil)
		mockStore.On("ListLoansByStatus", mock.Anything, models.LoanApproved).Return([]models.Loan{}, nil)
		mockStore.On("ListExpiredOfferings", mock.Anything, mock.Anything).Return([]models.InvestmentOffering{}, nil)
		mockStore.On("ListMaturablePositions", mock.Anything, mock.Anything).Return([]models.InvestmentPosition{}, nil)
		mockStore.On("ListMaturedPlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{}, nil)
		mockStore.On("ListContributablePlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{planA, planB}, nil)

		mockStore.On("GetSavingsPlan", mock.Anything, "plan-a").Return(nil, errors.New("table throttled"))
		mockStore.On("GetSavingsPlan", mock.Anything, "plan-b").Return(&planB, nil)
		mockStore.On("GetWallet", mock.Anything, "user-plan-b").Return(&models.Wallet{UserID: "user-plan-b", Balance: 5000}, nil)
		mockStore.On("UpdateSavingsPlan", mock.Anything, &planB, int64(-1000), mock.Anything).Return(nil)

		summary := newSweeper(mockStore).RunDailySweep(context.Background(), now)

		assert.Equal(t, 1, summary.Processed)
		assert.Equal(t, 1, summary.Errors)
		assert.Equal(t, 0, summary.Skipped)
		mockStore.AssertExpectations(t)
	})

	t.Run("Insufficient Funds Counts As Skip", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		plan := contributablePlan("plan-a")
		mockStore.On("ListLoansByStatus", mock.Anything, models.LoanApproved, models.LoanOverdue).Return([]models.Loan{}, nil)
		mockStore.On("ListLoansByStatus", mock.Anything, models.LoanApproved).Return([]models.Loan{}, nil)
		mockStore.On("ListExpiredOfferings", mock.Anything, mock.Anything).Return([]models.InvestmentOffering{}, nil)
		mockStore.On("ListMaturablePositions", mock.Anything, mock.Anything).Return([]models.InvestmentPosition{}, nil)
		mockStore.On("ListMaturedPlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{}, nil)
		mockStore.On("ListContributablePlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{plan}, nil)
		mockStore.On("GetSavingsPlan", mock.Anything, "plan-a").Return(&plan, nil)
		mockStore.On("GetWallet", mock.Anything, "user-plan-a").Return(&models.Wallet{UserID: "user-plan-a", Balance: 10}, nil)

		summary := newSweeper(mockStore).RunDailySweep(context.Background(), now)

		assert.Equal(t, 0, summary.Processed)
		assert.Equal(t, 0, summary.Errors)
		assert.Equal(t, 1, summary.Skipped)
	})

	t.Run("Dividend Snapshot Only At Month End", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		emptyLists(mockStore)
		membership := models.CooperativeMembership{UserID: "user-1", Balance: 100000, Active: true, Version: 1}
		mockStore.On("ListActiveMemberships", mock.Anything).Return([]models.CooperativeMembership{membership}, nil)
		mockStore.On("GetMembership", mock.Anything, "user-1").Return(&membership, nil)
		mockStore.On("UpdateMembership", mock.Anything, &membership, int64(0), (*models.AuditActivity)(nil)).Return(nil)

		monthEnd := time.Date(2025, 3, 31, 2, 0, 0, 0, time.UTC)
		summary := newSweeper(mockStore).RunDailySweep(context.Background(), monthEnd)

		assert.Equal(t, 1, summary.Processed)
		assert.Len(t, membership.Dividends, 1)
	})

	t.Run("Mid Month Skips Membership Listing", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		emptyLists(mockStore)

		newSweeper(mockStore).RunDailySweep(context.Background(), now)

		mockStore.AssertNotCalled(t, "ListActiveMemberships", mock.Anything)
	})

	t.Run("Second Pass Same Day Is Idempotent", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		plan := contributablePlan("plan-a")
		plan.Payments = []models.PaymentEntry{{Date: now, Amount: 1000, Paid: true}}
		mockStore.On("ListLoansByStatus", mock.Anything, models.LoanApproved, models.LoanOverdue).Return([]models.Loan{}, nil)
		mockStore.On("ListLoansByStatus", mock.Anything, models.LoanApproved).Return([]models.Loan{}, nil)
		mockStore.On("ListExpiredOfferings", mock.Anything, mock.Anything).Return([]models.InvestmentOffering{}, nil)
		mockStore.On("ListMaturablePositions", mock.Anything, mock.Anything).Return([]models.InvestmentPosition{}, nil)
		mockStore.On("ListMaturedPlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{}, nil)
		mockStore.On("ListContributablePlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{plan}, nil)
		mockStore.On("GetSavingsPlan", mock.Anything, "plan-a").Return(&plan, nil)

		summary := newSweeper(mockStore).RunDailySweep(context.Background(), now)

		assert.Equal(t, 0, summary.Processed)
		assert.Equal(t, 1, summary.Skipped)
		mockStore.AssertNotCalled(t, "UpdateSavingsPlan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Repayment Runs Before Savings Maturity", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		var order []string

		approvedAt := now.AddDate(0, -2, 0)
		l := models.Loan{
			ID: "loan-1", UserID: "user-1", Principal: 10000, InterestRate: 10,
			DurationInMonths: 1, Status: models.LoanOverdue, Balance: 11000,
			DateApproved: &approvedAt,
			Repayments:   []models.RepaymentEntry{{DueDate: approvedAt.AddDate(0, 0, 30), Amount: 11000}},
			Version:      1,
		}
		maturedPlan := contributablePlan("plan-m")
		maturedPlan.Saved = 4000
		maturedPlan.WithdrawalDate = now.AddDate(0, 0, -1)

		mockStore.On("ListLoansByStatus", mock.Anything, models.LoanApproved, models.LoanOverdue).Return([]models.Loan{l}, nil)
		mockStore.On("ListLoansByStatus", mock.Anything, models.LoanApproved).Return([]models.Loan{}, nil)
		mockStore.On("ListExpiredOfferings", mock.Anything, mock.Anything).Return([]models.InvestmentOffering{}, nil)
		mockStore.On("ListMaturablePositions", mock.Anything, mock.Anything).Return([]models.InvestmentPosition{}, nil)
		mockStore.On("ListMaturedPlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{maturedPlan}, nil)
		mockStore.On("ListContributablePlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{}, nil)

		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(&l, nil)
		mockStore.On("GetWallet", mock.Anything, "user-1").Return(&models.Wallet{UserID: "user-1", Balance: 20000}, nil)
		mockStore.On("UpdateLoan", mock.Anything, &l, int64(-11000), mock.Anything).Run(func(args mock.Arguments) {
			order = append(order, "repayment")
		}).Return(nil)
		mockStore.On("GetSavingsPlan", mock.Anything, "plan-m").Return(&maturedPlan, nil)
		mockStore.On("UpdateSavingsPlan", mock.Anything, &maturedPlan, int64(4000), mock.Anything).Run(func(args mock.Arguments) {
			order = append(order, "savings payout")
		}).Return(nil)

		summary := newSweeper(mockStore).RunDailySweep(context.Background(), now)

		assert.Equal(t, 2, summary.Processed)
		assert.Equal(t, []string{"repayment", "savings payout"}, order)
	})
}

func TestRunHourlySweep(t *testing.T) {
	t.Run("Only Matching Hour Is Funded", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		nineOClock := contributablePlan("plan-9")
		elevenOClock := contributablePlan("plan-11")
		elevenOClock.Hour = 11
		mockStore.On("ListContributablePlans", mock.Anything, mock.Anything).Return([]models.SavingsPlan{nineOClock, elevenOClock}, nil)
		mockStore.On("GetSavingsPlan", mock.Anything, "plan-9").Return(&nineOClock, nil)
		mockStore.On("GetWallet", mock.Anything, "user-plan-9").Return(&models.Wallet{UserID: "user-plan-9", Balance: 5000}, nil)
		mockStore.On("UpdateSavingsPlan", mock.Anything, &nineOClock, int64(-1000), mock.Anything).Return(nil)

		now := time.Date(2025, 3, 10, 9, 5, 0, 0, time.UTC)
		summary := newSweeper(mockStore).RunHourlySweep(context.Background(), now)

		assert.Equal(t, 1, summary.Processed)
		assert.Equal(t, 1, summary.Skipped)
		mockStore.AssertNotCalled(t, "GetSavingsPlan", mock.Anything, "plan-11")
	})

	t.Run("List Failure Is An Error", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("ListContributablePlans", mock.Anything, mock.Anything).Return(nil, errors.New("scan failed"))

		summary := newSweeper(mockStore).RunHourlySweep(context.Background(), time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

		assert.Equal(t, 1, summary.Errors)
	})
}
