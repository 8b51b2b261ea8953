package repoargs

import (
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateTransaction struct {
	AccountID    int64
	Amount       decimal.Decimal
	Type         domain.TransactionType
	BalanceAfter decimal.Decimal
	LoanApprove  bool
}

// DateRange включительный диапазон календарных дат.
type DateRange struct {
	From time.Time
	To   time.Time
}

// TransactionFilter фильтр выборки журнала. Пустые поля не участвуют в фильтрации.
type TransactionFilter struct {
	Types []domain.TransactionType
	Range *DateRange
}

// UpdateLoan новые значения полей кредитной записи.
type UpdateLoan struct {
	ID           int64
	Type         domain.TransactionType
	BalanceAfter decimal.Decimal
	LoanApprove  bool
}
