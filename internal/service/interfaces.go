package service

import (
	"context"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, id int64, args repoargs.UpdateUser) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, encryptedPassword string) error
}

type AddressRepository interface {
	Upsert(ctx context.Context, args repoargs.UpsertAddress) (*domain.Address, error)
	FindByUserID(ctx context.Context, userID int64) (*domain.Address, error)
}

type AccountRepository interface {
	Create(ctx context.Context, args repoargs.CreateAccount) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Account, error)
	GetByAccountNo(ctx context.Context, accountNo string) (*domain.Account, error)
	LockByUserID(ctx context.Context, userID int64) (*domain.Account, error)
	LockByID(ctx context.Context, id int64) (*domain.Account, error)
	LockByIDs(ctx context.Context, ids []int64) ([]domain.Account, error)
	UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) (*domain.Account, error)
	TotalBalance(ctx context.Context) (decimal.Decimal, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error)
	LockByID(ctx context.Context, id int64) (*domain.Transaction, error)
	UpdateLoan(ctx context.Context, args repoargs.UpdateLoan) (*domain.Transaction, error)
	CountApprovedLoans(ctx context.Context, accountID int64) (int64, error)
	GetByAccountID(
		ctx context.Context,
		accountID int64,
		filter repoargs.TransactionFilter,
	) ([]domain.Transaction, error)
	GetPendingLoans(ctx context.Context, limit uint) ([]domain.Transaction, error)
	SumAmounts(ctx context.Context, accountID *int64, dateRange repoargs.DateRange) (decimal.Decimal, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, args repoargs.CreateNotification) error
	GetPending(ctx context.Context, limit uint) ([]domain.Notification, error)
	MarkSent(ctx context.Context, ids []uuid.UUID, fn repoargs.BatchExecQueryRow)
	IncrementAttempts(ctx context.Context, attempts []repoargs.NotificationAttempt, fn repoargs.BatchExecQueryRow)
}
