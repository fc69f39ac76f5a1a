package domain

import "errors"

// Common domain errors shared by all engines.
var (
	// ErrNotFound is returned when a requested entity does not exist, or when a
	// decision is attempted on a transaction or loan that is no longer pending.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when registering with an email that is taken.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidCredentials is returned on a failed login. The message is the
	// same for an unknown identity and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotApproved is returned when a pending account tries to authenticate.
	ErrNotApproved = errors.New("account pending approval")

	// ErrAccountFrozen is returned when a frozen account initiates a
	// transaction or loan application.
	ErrAccountFrozen = errors.New("account frozen")

	// ErrInsufficientFunds is returned when a withdrawal or transfer exceeds
	// the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidConfirmationCode is returned when a confirmation code fails the
	// 6-digit format check.
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")

	// ErrConfirmationNotEnabled is returned by the user-facing confirmation
	// path for every well-formed code. Self-service confirmation is not
	// enabled; pending transactions and loans are completed by an operator.
	ErrConfirmationNotEnabled = errors.New("confirmation code rejected, contact support")
)
