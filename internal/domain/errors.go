package domain

import (
	"errors"
)

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrPasswordMissMatch = errors.New("password mismatch")
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrUnknown           = errors.New("unknown error")
	ErrForbidden         = errors.New("forbidden")
	ErrValueOutOfRange   = errors.New("value out of range")
)

// Причины отказа в проведении операции. Возвращаются обернутыми в *RejectionError.
var (
	ErrAmountBelowMinimum   = errors.New("amount below minimum")
	ErrAmountAboveMaximum   = errors.New("amount above maximum")
	ErrNonPositiveAmount    = errors.New("non-positive amount")
	ErrNotEnoughBalance     = errors.New("not enough balance")
	ErrBankInsolvent        = errors.New("bank insolvent")
	ErrReceiverNotFound     = errors.New("receiver not found")
	ErrSameAccount          = errors.New("same account")
	ErrLoanLimitExceeded    = errors.New("loan limit exceeded")
	ErrLoanNotApproved      = errors.New("loan not approved")
	ErrLoanAlreadyApproved  = errors.New("loan already approved")
	ErrLoanAlreadyPaid      = errors.New("loan already paid")
	ErrBalanceLimitExceeded = errors.New("balance limit exceeded")
)

// RejectionError отказ бизнес-правила. Reason - человекочитаемое сообщение для клиента, Cause - одна из
// сентинел-ошибок выше, по ней вызывающий код проверяет тип отказа через errors.Is.
type RejectionError struct {
	Reason string
	Cause  error
}

func NewRejectionError(cause error, reason string) error {
	return &RejectionError{Reason: reason, Cause: cause}
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func (e *RejectionError) Unwrap() error {
	return e.Cause
}
