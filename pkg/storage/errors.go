package storage

import "errors"

// ErrInsufficientFunds is returned when a wallet balance cannot cover a debit.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidPin is returned when a transaction pin does not match the wallet's.
var ErrInvalidPin = errors.New("invalid transaction pin")

// ErrAlreadyPaid is returned when a targeted schedule entry is already settled.
var ErrAlreadyPaid = errors.New("entry already paid")

// ErrIndexOutOfRange is returned when a repayment index does not exist on the schedule.
var ErrIndexOutOfRange = errors.New("repayment index out of range")

// ErrNotEligible is returned when a business rule blocks the operation,
// e.g. a guarantor who is not a cooperative member or a membership too new for a loan.
var ErrNotEligible = errors.New("not eligible")

// ErrAlreadyProcessed is the idempotence guard: the state transition has
// already happened for this record and period, so the call is a no-op.
var ErrAlreadyProcessed = errors.New("already processed")

// ErrVersionConflict is returned when an optimistic-lock version check fails
// because another writer got to the record first. Callers may re-read and retry.
var ErrVersionConflict = errors.New("version conflict")

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")
