package storage

import (
	"context"

	"github.com/Popsicool/wages-finance/pkg/models"
)

// LoanStore defines the interface for loan accounts and their sweep queries.
type LoanStore interface {
	// GetLoan retrieves a loan by its ID.
	GetLoan(ctx context.Context, loanID string) (*models.Loan, error)

	// CreateLoan stores a new loan request.
	CreateLoan(ctx context.Context, loan *models.Loan) (*models.Loan, error)

	// ListLoansByStatus retrieves every loan in any of the given statuses.
	ListLoansByStatus(ctx context.Context, statuses ...models.LoanStatus) ([]models.Loan, error)

	// UpdateLoan commits a loan state transition. walletDelta follows the
	// UpdateSavingsPlan convention.
	UpdateLoan(ctx context.Context, loan *models.Loan, walletDelta int64, activity *models.AuditActivity) error
}
