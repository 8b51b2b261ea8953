package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/service"
	"github.com/shopspring/decimal"
)

type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*service.Profile, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
	GetProfile(ctx context.Context, userID int64) (*service.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, args service.UpdateProfileArgs) (*service.Profile, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
}

type TransactionServicer interface {
	GetAccount(ctx context.Context, userID int64) (*domain.Account, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Transaction, error)
	Transfer(
		ctx context.Context,
		userID int64,
		receiverAccountNo string,
		amount decimal.Decimal,
	) (*domain.Transaction, error)
}

type LoanServicer interface {
	RequestLoan(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Transaction, error)
	ApproveLoan(ctx context.Context, actor domain.Actor, loanID int64) (*domain.Transaction, error)
	PayLoan(ctx context.Context, userID int64, loanID int64) (*domain.Transaction, error)
	ListLoans(ctx context.Context, userID int64) ([]domain.Transaction, error)
	PendingLoans(ctx context.Context, actor domain.Actor, limit uint) ([]domain.Transaction, error)
}

type ReportServicer interface {
	Report(ctx context.Context, userID int64, start, end *time.Time) (*service.Report, error)
}
