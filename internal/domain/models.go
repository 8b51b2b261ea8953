package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      RoleType
}

type Account struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      int64
	AccountType AccountType
	AccountNo   string
	BirthDate   *time.Time
	Gender      GenderType
	OpenedDate  time.Time
	Balance     decimal.Decimal
}

type Address struct {
	ID         int64
	UserID     int64
	Street     string
	City       string
	PostalCode int32
	Country    string
}

// Transaction запись журнала операций по счету. BalanceAfter - снимок баланса счета сразу после
// применения операции, он не пересчитывается.
type Transaction struct {
	ID           int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	AccountID    int64
	Amount       decimal.Decimal
	Type         TransactionType
	BalanceAfter decimal.Decimal
	LoanApprove  bool
}

// Notification запись исходящего уведомления (outbox). Пишется в той же транзакции БД, что и денежная
// операция, доставляется асинхронно.
type Notification struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserID       int64
	Template     NotificationTemplate
	Subject      string
	Amount       decimal.NullDecimal
	Counterparty string
	Status       NotificationStatusType
	Attempts     uint
	SentAt       *time.Time

	// Заполняются только при выборке на отправку.
	RecipientEmail string
	RecipientName  string
}

// MailMessage готовое к отправке письмо.
type MailMessage struct {
	To       string
	Subject  string
	HTMLBody string
}
