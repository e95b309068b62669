// Package errs defines the error taxonomy shared by repositories and
// services. Callers distinguish outcomes with errors.Is; storage
// failures are never conflated with missing records.
package errs

import "errors"

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates an add for an ID that is already taken.
// Existing records are never overwritten.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInsufficientBudget indicates the destination club cannot cover a
// transfer fee.
var ErrInsufficientBudget = errors.New("insufficient budget")

// ErrInvalidArgument indicates a caller supplied a bad amount, age,
// position, or identifier.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrIOFailure indicates a durable-storage read or write error. Not
// retried internally; the previously persisted state remains intact.
var ErrIOFailure = errors.New("storage i/o failure")

// ErrCorruptData indicates a persisted document exists but cannot be
// decoded. History is never silently discarded.
var ErrCorruptData = errors.New("corrupt document")
