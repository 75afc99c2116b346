package loan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Popsicool/wages-finance/pkg/models"
	"github.com/Popsicool/wages-finance/pkg/storage"
	"github.com/Popsicool/wages-finance/pkg/storage/mocks"
)

func pendingLoan() *models.Loan {
	return &models.Loan{
		ID:                 "loan-1",
		UserID:             "borrower",
		Guarantor1ID:       "g1",
		Guarantor2ID:       "g2",
		Guarantor1Approval: models.ApprovalApproved,
		Guarantor2Approval: models.ApprovalApproved,
		Principal:          10000,
		DurationInMonths:   1,
		InterestRate:       10,
		Status:             models.LoanPending,
		Active:             true,
		Version:            1,
	}
}

func approvedLoan(approvedAt time.Time) *models.Loan {
	l := pendingLoan()
	l.Status = models.LoanApproved
	l.Balance = 11000
	l.DateApproved = &approvedAt
	l.Repayments = []models.RepaymentEntry{
		{DueDate: approvedAt.AddDate(0, 0, 30), Amount: 11000},
	}
	return l
}

func TestRequest(t *testing.T) {
	asOf := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	activeMember := func(joined time.Time) *models.CooperativeMembership {
		return &models.CooperativeMembership{UserID: "borrower", Active: true, JoinedAt: joined}
	}

	t.Run("Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMembership", mock.Anything, "borrower").Return(activeMember(asOf.AddDate(-1, 0, 0)), nil)
		mockStore.On("GetMembership", mock.Anything, "g1").Return(&models.CooperativeMembership{UserID: "g1", Active: true}, nil)
		mockStore.On("GetMembership", mock.Anything, "g2").Return(&models.CooperativeMembership{UserID: "g2", Active: true}, nil)
		mockStore.On("CreateLoan", mock.Anything, mock.AnythingOfType("*models.Loan")).Return(func(_ context.Context, l *models.Loan) *models.Loan { return l }, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		created, err := engine.Request(context.Background(), "borrower", "g1", "g2", 10000, 6, asOf)

		assert.NoError(t, err)
		assert.Equal(t, models.LoanPending, created.Status)
		assert.Equal(t, models.ApprovalPending, created.Guarantor1Approval)
		assert.Equal(t, DefaultInterestRate, created.InterestRate)
		mockStore.AssertExpectations(t)
	})

	t.Run("Membership Too Young", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMembership", mock.Anything, "borrower").Return(activeMember(asOf.AddDate(0, -2, 0)), nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		_, err := engine.Request(context.Background(), "borrower", "g1", "g2", 10000, 6, asOf)

		assert.ErrorIs(t, err, storage.ErrNotEligible)
		mockStore.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything)
	})

	t.Run("Guarantor Must Differ From Borrower", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		_, err := engine.Request(context.Background(), "borrower", "borrower", "g2", 10000, 6, asOf)

		assert.ErrorIs(t, err, storage.ErrNotEligible)
	})

	t.Run("Inactive Guarantor", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMembership", mock.Anything, "borrower").Return(activeMember(asOf.AddDate(-1, 0, 0)), nil)
		mockStore.On("GetMembership", mock.Anything, "g1").Return(&models.CooperativeMembership{UserID: "g1", Active: false}, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		_, err := engine.Request(context.Background(), "borrower", "g1", "g2", 10000, 6, asOf)

		assert.ErrorIs(t, err, storage.ErrNotEligible)
	})
}

func TestApprove(t *testing.T) {
	asOf := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Single Month Schedule Carries Full Balance", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := pendingLoan()
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("UpdateLoan", mock.Anything, l, int64(10000), mock.MatchedBy(func(a *models.AuditActivity) bool {
			return a.Direction == models.CREDIT && a.Amount == 10000
		})).Return(nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.Approve(context.Background(), "loan-1", asOf)

		assert.NoError(t, err)
		assert.Equal(t, models.LoanApproved, l.Status)
		assert.Equal(t, int64(11000), l.Balance)
		assert.Len(t, l.Repayments, 1)
		assert.Equal(t, int64(11000), l.Repayments[0].Amount)
		mockStore.AssertExpectations(t)
	})

	t.Run("Schedule Sums Exactly To Balance", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := pendingLoan()
		l.DurationInMonths = 3
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("UpdateLoan", mock.Anything, l, int64(10000), mock.Anything).Return(nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.Approve(context.Background(), "loan-1", asOf)

		assert.NoError(t, err)
		assert.Len(t, l.Repayments, 3)
		var sum int64
		for _, entry := range l.Repayments {
			sum += entry.Amount
		}
		// 11000 does not divide by 3; the remainder lands on the last entry.
		assert.Equal(t, int64(11000), sum)
		assert.Equal(t, int64(3666), l.Repayments[0].Amount)
		assert.Equal(t, int64(3668), l.Repayments[2].Amount)
	})

	t.Run("Missing Guarantor Approval", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := pendingLoan()
		l.Guarantor2Approval = models.ApprovalPending
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.Approve(context.Background(), "loan-1", asOf)

		assert.ErrorIs(t, err, storage.ErrNotEligible)
		mockStore.AssertNotCalled(t, "UpdateLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already Approved", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(approvedLoan(asOf), nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.Approve(context.Background(), "loan-1", asOf)

		assert.ErrorIs(t, err, storage.ErrAlreadyProcessed)
	})
}

func TestCaptureScheduledRepayment(t *testing.T) {
	approvedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	due := approvedAt.AddDate(0, 0, 30)

	t.Run("Captures Earliest Due Entry", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := approvedLoan(approvedAt)
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("GetWallet", mock.Anything, "borrower").Return(&models.Wallet{UserID: "borrower", Balance: 20000}, nil)
		mockStore.On("UpdateLoan", mock.Anything, l, int64(-11000), mock.AnythingOfType("*models.AuditActivity")).Return(nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.CaptureScheduledRepayment(context.Background(), "loan-1", due)

		assert.NoError(t, err)
		assert.True(t, l.Repayments[0].Paid)
		assert.Equal(t, models.LoanRepayed, l.Status)
		assert.Equal(t, int64(0), l.Balance)
		assert.Equal(t, int64(11000), l.AmountRepaid)
		assert.False(t, l.Active)
		mockStore.AssertExpectations(t)
	})

	t.Run("Insufficient Funds Is A Silent Skip", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := approvedLoan(approvedAt)
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("GetWallet", mock.Anything, "borrower").Return(&models.Wallet{UserID: "borrower", Balance: 100}, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.CaptureScheduledRepayment(context.Background(), "loan-1", due)

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		assert.False(t, l.Repayments[0].Paid)
		assert.Equal(t, int64(11000), l.Balance)
		mockStore.AssertNotCalled(t, "UpdateLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Nothing Due Yet", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := approvedLoan(approvedAt)
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.CaptureScheduledRepayment(context.Background(), "loan-1", approvedAt.AddDate(0, 0, 10))

		assert.ErrorIs(t, err, storage.ErrAlreadyProcessed)
	})

	t.Run("Overdue Loan Keeps Repaying", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := approvedLoan(approvedAt)
		l.Status = models.LoanOverdue
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("GetWallet", mock.Anything, "borrower").Return(&models.Wallet{UserID: "borrower", Balance: 20000}, nil)
		mockStore.On("UpdateLoan", mock.Anything, l, int64(-11000), mock.Anything).Return(nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.CaptureScheduledRepayment(context.Background(), "loan-1", due.AddDate(0, 1, 0))

		assert.NoError(t, err)
		assert.Equal(t, models.LoanRepayed, l.Status)
	})
}

func TestDetectOverdue(t *testing.T) {
	approvedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Past Term Flags Overdue", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := approvedLoan(approvedAt)
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("UpdateLoan", mock.Anything, l, int64(0), (*models.AuditActivity)(nil)).Return(nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		overdue, err := engine.DetectOverdue(context.Background(), "loan-1", approvedAt.AddDate(0, 0, 31))

		assert.NoError(t, err)
		assert.True(t, overdue)
		assert.Equal(t, models.LoanOverdue, l.Status)
		mockStore.AssertExpectations(t)
	})

	t.Run("Within Term Is Not Overdue", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := approvedLoan(approvedAt)
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		overdue, err := engine.DetectOverdue(context.Background(), "loan-1", approvedAt.AddDate(0, 0, 30))

		assert.NoError(t, err)
		assert.False(t, overdue)
		mockStore.AssertNotCalled(t, "UpdateLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Already Overdue Stays Overdue", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := approvedLoan(approvedAt)
		l.Status = models.LoanOverdue
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		overdue, err := engine.DetectOverdue(context.Background(), "loan-1", approvedAt.AddDate(0, 2, 0))

		assert.NoError(t, err)
		assert.True(t, overdue)
		mockStore.AssertNotCalled(t, "UpdateLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLiquidate(t *testing.T) {
	approvedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	twoEntryLoan := func() *models.Loan {
		l := approvedLoan(approvedAt)
		l.Balance = 10000
		l.Repayments = []models.RepaymentEntry{
			{DueDate: approvedAt.AddDate(0, 0, 30), Amount: 5000},
			{DueDate: approvedAt.AddDate(0, 0, 60), Amount: 5000},
		}
		return l
	}

	t.Run("Settles Everything Outstanding", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := twoEntryLoan()
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("GetWallet", mock.Anything, "borrower").Return(&models.Wallet{UserID: "borrower", Balance: 10000, TransactionPin: "1234"}, nil)
		mockStore.On("UpdateLoan", mock.Anything, l, int64(-10000), mock.MatchedBy(func(a *models.AuditActivity) bool {
			return a.Amount == 10000 && a.Direction == models.DEBIT
		})).Return(nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.Liquidate(context.Background(), "loan-1", "1234")

		assert.NoError(t, err)
		assert.True(t, l.Repayments[0].Paid)
		assert.True(t, l.Repayments[1].Paid)
		assert.Equal(t, models.LoanRepayed, l.Status)
		assert.Equal(t, int64(0), l.Balance)
		mockStore.AssertExpectations(t)
	})

	t.Run("Invalid Pin", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := twoEntryLoan()
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("GetWallet", mock.Anything, "borrower").Return(&models.Wallet{UserID: "borrower", Balance: 10000, TransactionPin: "1234"}, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.Liquidate(context.Background(), "loan-1", "0000")

		assert.ErrorIs(t, err, storage.ErrInvalidPin)
		assert.False(t, l.Repayments[0].Paid)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := twoEntryLoan()
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("GetWallet", mock.Anything, "borrower").Return(&models.Wallet{UserID: "borrower", Balance: 9999, TransactionPin: "1234"}, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.Liquidate(context.Background(), "loan-1", "1234")

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		mockStore.AssertNotCalled(t, "UpdateLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRepaySelected(t *testing.T) {
	approvedAt := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	threeEntryLoan := func() *models.Loan {
		l := approvedLoan(approvedAt)
		l.Repayments = []models.RepaymentEntry{
			{DueDate: approvedAt.AddDate(0, 0, 30), Amount: 3000, Paid: true},
			{DueDate: approvedAt.AddDate(0, 0, 60), Amount: 3000},
			{DueDate: approvedAt.AddDate(0, 0, 90), Amount: 3000},
		}
		l.Balance = 6000
		l.AmountRepaid = 3000
		return l
	}

	t.Run("All Or Nothing Success", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := threeEntryLoan()
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("GetWallet", mock.Anything, "borrower").Return(&models.Wallet{UserID: "borrower", Balance: 6000}, nil)
		mockStore.On("UpdateLoan", mock.Anything, l, int64(-6000), mock.Anything).Return(nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.RepaySelected(context.Background(), "loan-1", []int{1, 2})

		assert.NoError(t, err)
		assert.Equal(t, models.LoanRepayed, l.Status)
		assert.Equal(t, int64(0), l.Balance)
	})

	t.Run("Index Out Of Range Blocks The Batch", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := threeEntryLoan()
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.RepaySelected(context.Background(), "loan-1", []int{1, 7})

		assert.ErrorIs(t, err, storage.ErrIndexOutOfRange)
		assert.False(t, l.Repayments[1].Paid)
		mockStore.AssertNotCalled(t, "GetWallet", mock.Anything, mock.Anything)
	})

	t.Run("Already Paid Entry Blocks The Batch", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := threeEntryLoan()
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.RepaySelected(context.Background(), "loan-1", []int{0, 1})

		assert.ErrorIs(t, err, storage.ErrAlreadyPaid)
		assert.False(t, l.Repayments[1].Paid)
	})

	t.Run("Insufficient Funds Blocks The Batch", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := threeEntryLoan()
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("GetWallet", mock.Anything, "borrower").Return(&models.Wallet{UserID: "borrower", Balance: 5999}, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.RepaySelected(context.Background(), "loan-1", []int{1, 2})

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		assert.False(t, l.Repayments[1].Paid)
		assert.False(t, l.Repayments[2].Paid)
		mockStore.AssertNotCalled(t, "UpdateLoan", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRespondAsGuarantor(t *testing.T) {
	t.Run("Rejection Rejects The Loan", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := pendingLoan()
		l.Guarantor1Approval = models.ApprovalPending
		l.Guarantor2Approval = models.ApprovalPending
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)
		mockStore.On("UpdateLoan", mock.Anything, l, int64(0), (*models.AuditActivity)(nil)).Return(nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.RespondAsGuarantor(context.Background(), "loan-1", "g1", false)

		assert.NoError(t, err)
		assert.Equal(t, models.ApprovalRejected, l.Guarantor1Approval)
		assert.Equal(t, models.LoanRejected, l.Status)
	})

	t.Run("Non Guarantor Cannot Respond", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		l := pendingLoan()
		mockStore.On("GetLoan", mock.Anything, "loan-1").Return(l, nil)

		engine := NewEngine(mockStore, mockStore, mockStore, nil, nil)
		err := engine.RespondAsGuarantor(context.Background(), "loan-1", "stranger", true)

		assert.ErrorIs(t, err, storage.ErrNotEligible)
	})
}
