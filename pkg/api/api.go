// Package api holds the HTTP surface's request and response types. They are
// deliberately separate from the domain models so storage attributes never
// leak onto the wire.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wallet is the API representation of a user's wallet.
type Wallet struct {
	UserId  string `json:"user_id"`
	Balance int64  `json:"balance"`
	Version int64  `json:"version"`
}

// NewWallet is the request body for creating a wallet.
type NewWallet struct {
	UserId string `json:"user_id"`
}

// Activity is one audit trail entry. Every product reports its wallet
// movements in this one shape.
type Activity struct {
	Id        openapi_types.UUID `json:"id"`
	UserId    string             `json:"user_id"`
	Title     string             `json:"title"`
	Amount    int64              `json:"amount"`
	Direction string             `json:"direction"`
	Source    string             `json:"source"`
	CreatedAt time.Time          `json:"created_at"`
}

// SavingsPlan is the API representation of a recurring savings plan.
type SavingsPlan struct {
	Id             openapi_types.UUID `json:"id"`
	UserId         string             `json:"user_id"`
	Category       string             `json:"category"`
	TargetAmount   int64              `json:"target_amount"`
	Amount         int64              `json:"amount"`
	Saved          int64              `json:"saved"`
	Interest       int64              `json:"interest"`
	AllTimeSaved   int64              `json:"all_time_saved"`
	Frequency      string             `json:"frequency"`
	StartDate      openapi_types.Date `json:"start_date"`
	WithdrawalDate openapi_types.Date `json:"withdrawal_date"`
	Cycle          int                `json:"cycle"`
	GoalMet        bool               `json:"goal_met"`
	IsActive       bool               `json:"is_active"`
}

// NewSavingsPlan is the request body for opening a savings plan.
type NewSavingsPlan struct {
	UserId         string             `json:"user_id"`
	Category       string             `json:"category"`
	TargetAmount   int64              `json:"target_amount"`
	Amount         int64              `json:"amount"`
	Frequency      string             `json:"frequency"`
	Hour           int                `json:"hour"`
	StartDate      openapi_types.Date `json:"start_date"`
	WithdrawalDate openapi_types.Date `json:"withdrawal_date"`
}

// CancelSavingsRequest authorizes an early savings cancellation.
type CancelSavingsRequest struct {
	Pin string `json:"pin"`
}

// InvestmentOffering is the API representation of an investment product.
type InvestmentOffering struct {
	Id           openapi_types.UUID `json:"id"`
	Title        string             `json:"title"`
	Quota        int64              `json:"quota"`
	Investors    int64              `json:"investors"`
	InterestRate int64              `json:"interest_rate"`
	UnitShare    int64              `json:"unit_share"`
	EndDate      openapi_types.Date `json:"end_date"`
	IsActive     bool               `json:"is_active"`
}

// InvestmentPosition is the API representation of a user's stake in an offering.
type InvestmentPosition struct {
	Id           openapi_types.UUID `json:"id"`
	UserId       string             `json:"user_id"`
	OfferingId   openapi_types.UUID `json:"offering_id"`
	Shares       int64              `json:"shares"`
	Principal    int64              `json:"principal"`
	InterestRate int64              `json:"interest_rate"`
	Interest     int64              `json:"interest"`
	Status       string             `json:"status"`
	DueDate      openapi_types.Date `json:"due_date"`
}

// SubscribeRequest is the request body for buying into an offering.
type SubscribeRequest struct {
	UserId string `json:"user_id"`
	Shares int64  `json:"shares"`
}

// CooperativeMembership is the API representation of a pooled-savings membership.
type CooperativeMembership struct {
	UserId            string          `json:"user_id"`
	MembershipId      string          `json:"membership_id"`
	Balance           int64           `json:"balance"`
	ProjectedDividend int64           `json:"projected_dividend"`
	Dividends         []DividendEntry `json:"dividends"`
	IsActive          bool            `json:"is_active"`
	JoinedAt          time.Time       `json:"joined_at"`
}

// DividendEntry is one realized month-end dividend.
type DividendEntry struct {
	MonthKey       string `json:"month_key"`
	ClosingBalance int64  `json:"closing_balance"`
	Dividend       int64  `json:"dividend"`
	Paid           bool   `json:"paid"`
}

// ContributionRequest is the request body for a cooperative contribution.
type ContributionRequest struct {
	Amount int64 `json:"amount"`
}

// Loan is the API representation of a loan account.
type Loan struct {
	Id               openapi_types.UUID `json:"id"`
	UserId           string             `json:"user_id"`
	Principal        int64              `json:"principal"`
	InterestRate     int64              `json:"interest_rate"`
	DurationInMonths int                `json:"duration_in_months"`
	Balance          int64              `json:"balance"`
	AmountRepaid     int64              `json:"amount_repaid"`
	Status           string             `json:"status"`
	Repayments       []RepaymentEntry   `json:"repayments"`
}

// RepaymentEntry is one scheduled loan repayment.
type RepaymentEntry struct {
	DueDate openapi_types.Date `json:"due_date"`
	Amount  int64              `json:"amount"`
	Paid    bool               `json:"paid"`
}

// NewLoanRequest is the request body for requesting a loan.
type NewLoanRequest struct {
	UserId           string `json:"user_id"`
	Guarantor1Id     string `json:"guarantor_1_id"`
	Guarantor2Id     string `json:"guarantor_2_id"`
	Principal        int64  `json:"principal"`
	DurationInMonths int    `json:"duration_in_months"`
}

// GuarantorResponseRequest records one guarantor's decision on a pending loan.
type GuarantorResponseRequest struct {
	GuarantorId string `json:"guarantor_id"`
	Approved    bool   `json:"approved"`
}

// RejectLoanRequest declines a pending loan.
type RejectLoanRequest struct {
	Reason string `json:"reason"`
}

// LiquidateRequest authorizes paying off a loan in full.
type LiquidateRequest struct {
	Pin string `json:"pin"`
}

// RepaySelectedRequest names the schedule entries to settle, by index.
type RepaySelectedRequest struct {
	Indices []int `json:"indices"`
}

// Bank is one supported payout destination.
type Bank struct {
	Name       string `json:"name"`
	BankCode   string `json:"bankCode"`
	RoutingKey string `json:"routingKey"`
	CategoryId string `json:"categoryId"`
}

// SweepResult reports what a sweep run did.
type SweepResult struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// Error is the uniform error body.
type Error struct {
	Message string `json:"message"`
}
