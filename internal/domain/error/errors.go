package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidUserID       = 4003
	CodeDuplicateEntry      = 4004
	CodeConstraintViolation = 4005
	CodeProductUnavailable  = 4006
	CodeOrderNotPending     = 4007
	CodeInvalidPosition     = 4008
	CodeUserNotFound        = 4040
	CodePackageNotFound     = 4041
	CodeOrderNotFound       = 4042

	// 5xxx - Server errors
	CodeInternalServer = 5000
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a wallet cannot cover a debit
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvalidAmount is returned when an amount string cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a caller supplies a negative amount
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidUsername is returned when a username is empty
	ErrInvalidUsername = errors.New("username cannot be empty")

	// ErrInvalidPosition is returned when a binary placement is neither left nor right
	ErrInvalidPosition = errors.New("position must be left or right")

	// ErrSelfReference is returned when a user would become its own upline or sponsor
	ErrSelfReference = errors.New("user cannot reference itself")

	// ErrInvalidLedgerType is returned for unknown wallet transaction types
	ErrInvalidLedgerType = errors.New("invalid ledger entry type")

	// ErrInvalidReference is returned when a ledger reference is empty
	ErrInvalidReference = errors.New("ledger reference cannot be empty")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = errors.New("user not found")

	// ErrWalletNotFound is returned when a user has no wallet row
	ErrWalletNotFound = errors.New("wallet not found")

	// ErrProductUnavailable is returned when a product is missing or inactive
	ErrProductUnavailable = errors.New("product is inactive or does not exist")

	// ErrPackageNotFound is returned when the requested package doesn't exist
	ErrPackageNotFound = errors.New("package not found")

	// ErrOrderNotFound is returned when the requested pending order doesn't exist
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderNotPending is returned when completing or cancelling an order
	// that has already been paid or cancelled
	ErrOrderNotPending = errors.New("order is no longer pending payment")

	// ErrEmptyCart is returned when checkout is attempted with no line items
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidQuantity is returned when a line item quantity is not positive
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrDuplicateEntry is returned when a unique constraint is violated
	ErrDuplicateEntry = errors.New("record already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDatabaseConnection is returned when there's a problem reaching the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrDuplicateEntry):
		return CodeDuplicateEntry
	case errors.Is(err, ErrConstraintViolation):
		return CodeConstraintViolation
	case errors.Is(err, ErrProductUnavailable):
		return CodeProductUnavailable
	case errors.Is(err, ErrOrderNotPending):
		return CodeOrderNotPending
	case errors.Is(err, ErrInvalidPosition):
		return CodeInvalidPosition
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrWalletNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrPackageNotFound):
		return CodePackageNotFound
	case errors.Is(err, ErrOrderNotFound):
		return CodeOrderNotFound
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	UserID      uint64
	Amount      string
	CurrBalance string
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %d: required %s, available %s",
		e.UserID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID uint64, amount, currentBalance string) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// PostingError represents a failure while posting a financial movement
// (checkout line item, bonus credit, pending-order completion)
type PostingError struct {
	UserID    uint64
	EntryType string
	Amount    string
	Reason    string
	Err       error
}

// Error implements the error interface for PostingError
func (e *PostingError) Error() string {
	return fmt.Sprintf("ledger posting failed for user %d (type: %s, amount: %s): %s - %v",
		e.UserID, e.EntryType, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *PostingError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PostingError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "posting_error",
		"user_id":    e.UserID,
		"entry_type": e.EntryType,
		"amount":     e.Amount,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewPostingError creates a detailed posting error
func NewPostingError(userID uint64, entryType, amount, reason string, err error) error {
	return &PostingError{
		UserID:    userID,
		EntryType: entryType,
		Amount:    amount,
		Reason:    reason,
		Err:       err,
	}
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsUserNotFoundError checks if the error is a user not found error
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrWalletNotFound) ||
		errors.Is(err, ErrPackageNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsProductUnavailableError checks if the error is a product availability error
func IsProductUnavailableError(err error) bool {
	return errors.Is(err, ErrProductUnavailable)
}
