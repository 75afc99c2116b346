package storage

// Storage defines the root interface for the entire data layer.
// It composes all available storage operations. Components should depend on
// the more granular interfaces (WalletStore, LoanStore, etc.) instead of this one.
type Storage interface {
	WalletStore
	AuditStore
	SavingsStore
	InvestmentStore
	CooperativeStore
	LoanStore
}

// SweepStore is the slice of the data layer the reconciliation sweeper needs:
// everything except wallet and audit administration.
type SweepStore interface {
	WalletStore
	SavingsStore
	InvestmentStore
	CooperativeStore
	LoanStore
}
