package repoargs

import (
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateNotification struct {
	ID           uuid.UUID
	UserID       int64
	Template     domain.NotificationTemplate
	Subject      string
	Amount       decimal.NullDecimal
	Counterparty string
}

// NotificationAttempt неудачная попытка отправки. Следующая попытка откладывается на
// RetryBase * 2^attempts, но не больше чем на RetryMax.
type NotificationAttempt struct {
	ID          uuid.UUID
	MaxAttempts uint
	RetryBase   time.Duration
	RetryMax    time.Duration
}
