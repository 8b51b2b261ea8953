package repoargs

import (
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
)

type CreateAccount struct {
	UserID      int64
	AccountType domain.AccountType
	AccountNo   string
	BirthDate   *time.Time
	Gender      domain.GenderType
}
