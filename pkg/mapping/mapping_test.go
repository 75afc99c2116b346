package mapping

import (
	"testing"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/assert"

	"github.com/Popsicool/wages-finance/pkg/api"
	"github.com/Popsicool/wages-finance/pkg/models"
)

func TestToApiWallet(t *testing.T) {
	wallet := &models.Wallet{UserID: "user-1", Balance: 5000, TransactionPin: "1234", Version: 3}

	apiWallet := ToApiWallet(wallet)

	assert.Equal(t, "user-1", apiWallet.UserId)
	assert.Equal(t, int64(5000), apiWallet.Balance)
	assert.Equal(t, int64(3), apiWallet.Version)
}

func TestToApiActivity(t *testing.T) {
	id := uuid.New()
	createdAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("Uniform Shape Across Sources", func(t *testing.T) {
		for _, source := range []models.ActivitySource{
			models.SourceWallet, models.SourceSavings, models.SourceInvestment,
			models.SourceCooperative, models.SourceLoan,
		} {
			activity := &models.AuditActivity{
				ID:        id.String(),
				UserID:    "user-1",
				Title:     "Movement",
				Amount:    100,
				Direction: models.DEBIT,
				Source:    source,
				CreatedAt: createdAt,
			}

			apiActivity := ToApiActivity(activity)

			assert.Equal(t, id, apiActivity.Id)
			assert.Equal(t, string(source), apiActivity.Source)
			assert.Equal(t, "DEBIT", apiActivity.Direction)
			assert.Equal(t, createdAt, apiActivity.CreatedAt)
		}
	})

	t.Run("Page Conversion Preserves Order", func(t *testing.T) {
		activities := []models.AuditActivity{
			{ID: uuid.New().String(), Title: "first"},
			{ID: uuid.New().String(), Title: "second"},
		}

		out := ToApiActivities(activities)

		assert.Len(t, out, 2)
		assert.Equal(t, "first", out[0].Title)
		assert.Equal(t, "second", out[1].Title)
	})
}

func TestToApiLoan(t *testing.T) {
	due := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	loan := &models.Loan{
		ID:               uuid.New().String(),
		UserID:           "user-1",
		Principal:        10000,
		InterestRate:     10,
		DurationInMonths: 2,
		Balance:          5500,
		AmountRepaid:     5500,
		Status:           models.LoanApproved,
		Repayments: []models.RepaymentEntry{
			{DueDate: due, Amount: 5500, Paid: true},
			{DueDate: due.AddDate(0, 0, 30), Amount: 5500, Paid: false},
		},
	}

	apiLoan := ToApiLoan(loan)

	assert.Equal(t, "APPROVED", apiLoan.Status)
	assert.Len(t, apiLoan.Repayments, 2)
	assert.True(t, apiLoan.Repayments[0].Paid)
	assert.Equal(t, due, apiLoan.Repayments[0].DueDate.Time)
	assert.Equal(t, int64(5500), apiLoan.Repayments[1].Amount)
}

func TestToDomainNewSavingsPlan(t *testing.T) {
	newPlan := &api.NewSavingsPlan{
		UserId:         "user-1",
		Category:       "HOUSE RENT",
		TargetAmount:   50000,
		Amount:         1000,
		Frequency:      "DAILY",
		Hour:           9,
		StartDate:      openapi_types.Date{Time: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		WithdrawalDate: openapi_types.Date{Time: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
	}

	plan := ToDomainNewSavingsPlan(newPlan)

	assert.NotEmpty(t, plan.ID)
	assert.True(t, plan.Active)
	assert.Equal(t, models.FrequencyDaily, plan.Frequency)
	assert.Equal(t, 9, plan.Hour)
	assert.Equal(t, int64(0), plan.Saved)
}
