package models

import (
	"time"
)

// ActivityDirection marks whether an audit entry moved money out of or into a wallet.
type ActivityDirection string

const (
	DEBIT  ActivityDirection = "DEBIT"
	CREDIT ActivityDirection = "CREDIT"
)

// ActivitySource identifies which product an audit entry originated from.
type ActivitySource string

const (
	SourceWallet      ActivitySource = "WALLET"
	SourceSavings     ActivitySource = "SAVINGS"
	SourceCooperative ActivitySource = "COOPERATIVE"
	SourceLoan        ActivitySource = "LOAN"
	SourceInvestment  ActivitySource = "INVESTMENT"
)

// AuditActivity is an append-only audit trail entry. Every mutating engine
// operation writes exactly one. Entries are never updated or deleted.
type AuditActivity struct {
	ID        string            `json:"id" dynamodbav:"id"`
	UserID    string            `json:"user_id" dynamodbav:"user_id"`
	Title     string            `json:"title" dynamodbav:"title"`
	Amount    int64             `json:"amount" dynamodbav:"amount"`
	Direction ActivityDirection `json:"direction" dynamodbav:"direction"`
	Source    ActivitySource    `json:"source" dynamodbav:"source"`
	CreatedAt time.Time         `json:"created_at" dynamodbav:"created_at"`
	GSI1PK    string            `json:"-" dynamodbav:"gsi1pk"`
}

// Wallet is a user's spendable fund balance, the sole medium of debit and
// credit across all engines. Balance is in whole currency units and must
// never go negative; the store enforces that with a conditional expression,
// and `version` provides optimistic locking against concurrent writers.
type Wallet struct {
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Balance        int64     `json:"balance" dynamodbav:"balance"`
	TransactionPin string    `json:"-" dynamodbav:"transaction_pin"`
	Version        int64     `json:"version" dynamodbav:"version"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

// SavingsFrequency is how often a savings plan expects a contribution.
type SavingsFrequency string

const (
	FrequencyDaily   SavingsFrequency = "DAILY"
	FrequencyWeekly  SavingsFrequency = "WEEKLY"
	FrequencyMonthly SavingsFrequency = "MONTHLY"
)

// SavingsCategory is the purpose a plan is saving towards. One active plan
// per (user, category) pair.
type SavingsCategory string

const (
	CategoryBirthday      SavingsCategory = "BIRTHDAY"
	CategoryCarPurchase   SavingsCategory = "CAR-PURCHASE"
	CategoryVacation      SavingsCategory = "VACATION"
	CategoryGadget        SavingsCategory = "GADGET-PURCHASE"
	CategoryMiscellaneous SavingsCategory = "MISCELLANEOUS"
)

// PaymentEntry records one captured scheduled contribution. Entries are
// append-only once Paid is true.
type PaymentEntry struct {
	Date   time.Time `json:"date" dynamodbav:"date"`
	Amount int64     `json:"amount" dynamodbav:"amount"`
	Paid   bool      `json:"paid" dynamodbav:"paid"`
}

// SavingsPlan tracks a recurring contribution goal for a user.
type SavingsPlan struct {
	ID             string           `json:"id" dynamodbav:"id"`
	UserID         string           `json:"user_id" dynamodbav:"user_id"`
	Category       SavingsCategory  `json:"category" dynamodbav:"category"`
	TargetAmount   int64            `json:"target_amount" dynamodbav:"target_amount"`
	Amount         int64            `json:"amount" dynamodbav:"amount"` // per-period contribution
	Saved          int64            `json:"saved" dynamodbav:"saved"`
	Interest       int64            `json:"interest" dynamodbav:"interest"`
	AllTimeSaved   int64            `json:"all_time_saved" dynamodbav:"all_time_saved"`
	Frequency      SavingsFrequency `json:"frequency" dynamodbav:"frequency"`
	Hour           int              `json:"hour" dynamodbav:"hour"` // preferred contribution hour of day
	StartDate      time.Time        `json:"start_date" dynamodbav:"start_date"`
	WithdrawalDate time.Time        `json:"withdrawal_date" dynamodbav:"withdrawal_date"`
	Cycle          int              `json:"cycle" dynamodbav:"cycle"`
	CancelDate     time.Time        `json:"cancel_date" dynamodbav:"cancel_date"`
	GoalMet        bool             `json:"goal_met" dynamodbav:"goal_met"`
	Active         bool             `json:"is_active" dynamodbav:"is_active"`
	Payments       []PaymentEntry   `json:"payment_details" dynamodbav:"payment_details"`
	Version        int64            `json:"version" dynamodbav:"version"`
	CreatedAt      time.Time        `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" dynamodbav:"updated_at"`
}

// InvestmentOffering is an admin-published investment product users subscribe to.
type InvestmentOffering struct {
	ID           string    `json:"id" dynamodbav:"id"`
	Title        string    `json:"title" dynamodbav:"title"`
	StartDate    time.Time `json:"start_date" dynamodbav:"start_date"`
	EndDate      time.Time `json:"end_date" dynamodbav:"end_date"`
	Active       bool      `json:"is_active" dynamodbav:"is_active"`
	Quota        int64     `json:"quota" dynamodbav:"quota"`
	Investors    int64     `json:"investors" dynamodbav:"investors"`
	InterestRate int64     `json:"interest_rate" dynamodbav:"interest_rate"` // percent
	UnitShare    int64     `json:"unit_share" dynamodbav:"unit_share"`       // price per share
	Version      int64     `json:"version" dynamodbav:"version"`
}

// InvestmentStatus is the lifecycle state of a user's investment position.
type InvestmentStatus string

const (
	InvestmentActive    InvestmentStatus = "ACTIVE"
	InvestmentMatured   InvestmentStatus = "MATURED"
	InvestmentWithdrawn InvestmentStatus = "WITHDRAWN"
)

// InvestmentPosition is a user's stake in an offering. The interest rate is
// frozen on the position at subscription time so later offering changes never
// reprice matured positions. Interest stays zero until the position leaves ACTIVE.
type InvestmentPosition struct {
	ID           string           `json:"id" dynamodbav:"id"`
	UserID       string           `json:"user_id" dynamodbav:"user_id"`
	OfferingID   string           `json:"offering_id" dynamodbav:"offering_id"`
	Shares       int64            `json:"shares" dynamodbav:"shares"`
	Principal    int64            `json:"principal" dynamodbav:"principal"`
	InterestRate int64            `json:"interest_rate" dynamodbav:"interest_rate"`
	Interest     int64            `json:"interest" dynamodbav:"interest"`
	Status       InvestmentStatus `json:"status" dynamodbav:"status"`
	DueDate      time.Time        `json:"due_date" dynamodbav:"due_date"`
	Version      int64            `json:"version" dynamodbav:"version"`
	CreatedAt    time.Time        `json:"created_at" dynamodbav:"created_at"`
}

// Payout is what the position is worth once matured.
func (p *InvestmentPosition) Payout() int64 {
	return p.Principal + p.Interest
}

// DividendEntry is one realized month-end dividend snapshot, keyed by a
// "January 2006" month key. Entries are append-only and computed exactly once.
type DividendEntry struct {
	MonthKey       string `json:"month" dynamodbav:"month"`
	ClosingBalance int64  `json:"closing_balance" dynamodbav:"closing_balance"`
	Dividend       int64  `json:"dividend" dynamodbav:"dividend"`
	Paid           bool   `json:"paid" dynamodbav:"paid"`
}

// CooperativeMembership is a user's pooled-savings group membership.
type CooperativeMembership struct {
	UserID            string          `json:"user_id" dynamodbav:"user_id"`
	MembershipID      string          `json:"membership_id" dynamodbav:"membership_id"`
	Balance           int64           `json:"balance" dynamodbav:"balance"`
	ProjectedDividend int64           `json:"projected_dividend" dynamodbav:"projected_dividend"`
	Active            bool            `json:"is_active" dynamodbav:"is_active"`
	Dividends         []DividendEntry `json:"monthly_dividend" dynamodbav:"monthly_dividend"`
	JoinedAt          time.Time       `json:"date_joined" dynamodbav:"date_joined"`
	Version           int64           `json:"version" dynamodbav:"version"`
	UpdatedAt         time.Time       `json:"updated_at" dynamodbav:"updated_at"`
}

// HasDividendFor reports whether a dividend has already been snapshotted
// under the given month key.
func (m *CooperativeMembership) HasDividendFor(monthKey string) bool {
	for _, d := range m.Dividends {
		if d.MonthKey == monthKey {
			return true
		}
	}
	return false
}

// LoanStatus is the lifecycle state of a loan.
type LoanStatus string

const (
	LoanPending  LoanStatus = "PENDING"
	LoanApproved LoanStatus = "APPROVED"
	LoanRejected LoanStatus = "REJECTED"
	LoanRepayed  LoanStatus = "REPAYED"
	// LoanOverdue is a soft overlay state: reporting only, repayment capture
	// continues to run against overdue loans.
	LoanOverdue LoanStatus = "OVERDUE"
)

// ApprovalStatus is a guarantor's decision on a loan request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// RepaymentEntry is one scheduled loan repayment. The schedule is built in
// full at approval time; entries are immutable once Paid.
type RepaymentEntry struct {
	DueDate time.Time `json:"due_date" dynamodbav:"due_date"`
	Amount  int64     `json:"amount" dynamodbav:"amount"`
	Paid    bool      `json:"paid" dynamodbav:"paid"`
}

// Loan is a requested or approved loan account. Invariant after every
// mutation: Balance == Principal + TotalInterest - AmountRepaid, Balance >= 0.
type Loan struct {
	ID                 string           `json:"id" dynamodbav:"id"`
	UserID             string           `json:"user_id" dynamodbav:"user_id"`
	Guarantor1ID       string           `json:"guarantor1_id" dynamodbav:"guarantor1_id"`
	Guarantor2ID       string           `json:"guarantor2_id" dynamodbav:"guarantor2_id"`
	Guarantor1Approval ApprovalStatus   `json:"guarantor1_approval" dynamodbav:"guarantor1_approval"`
	Guarantor2Approval ApprovalStatus   `json:"guarantor2_approval" dynamodbav:"guarantor2_approval"`
	Principal          int64            `json:"principal" dynamodbav:"principal"`
	AmountRepaid       int64            `json:"amount_repayed" dynamodbav:"amount_repayed"`
	Balance            int64            `json:"balance" dynamodbav:"balance"`
	DurationInMonths   int              `json:"duration_in_months" dynamodbav:"duration_in_months"`
	InterestRate       int64            `json:"interest_rate" dynamodbav:"interest_rate"` // percent
	Status             LoanStatus       `json:"status" dynamodbav:"status"`
	Repayments         []RepaymentEntry `json:"repayment_details" dynamodbav:"repayment_details"`
	DateRequested      time.Time        `json:"date_requested" dynamodbav:"date_requested"`
	DateApproved       *time.Time       `json:"date_approved,omitempty" dynamodbav:"date_approved,omitempty"`
	Active             bool             `json:"is_active" dynamodbav:"is_active"`
	Version            int64            `json:"version" dynamodbav:"version"`
}

// TotalInterest is the interest charged over the life of the loan.
func (l *Loan) TotalInterest() int64 {
	return l.Principal * l.InterestRate / 100
}

// Outstanding sums the unpaid repayment schedule entries.
func (l *Loan) Outstanding() int64 {
	var total int64
	for _, entry := range l.Repayments {
		if !entry.Paid {
			total += entry.Amount
		}
	}
	return total
}

// DueDate is the date the whole loan falls due: approval date plus thirty
// days per month of duration.
func (l *Loan) DueDate() *time.Time {
	if l.DateApproved == nil {
		return nil
	}
	due := l.DateApproved.AddDate(0, 0, l.DurationInMonths*30)
	return &due
}
