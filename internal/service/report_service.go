package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/pkg/uow"
	"github.com/shopspring/decimal"
)

// ReportBalanceScope по каким счетам считается баланс отчета за период.
type ReportBalanceScope string

const (
	// ReportScopeBank сумма записей всех счетов банка за период.
	ReportScopeBank ReportBalanceScope = "bank"
	// ReportScopeAccount сумма записей только счета юзера за период.
	ReportScopeAccount ReportBalanceScope = "account"
)

type Report struct {
	Account      *domain.Account
	Transactions []domain.Transaction
	Balance      decimal.Decimal
	Range        *repoargs.DateRange
}

type ReportService struct {
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	scope           ReportBalanceScope
}

func NewReportService(u uow.UOW, scope ReportBalanceScope) (*ReportService, error) {
	accountRepo, accErr := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if accErr != nil {
		return nil, accErr //nolint:wrapcheck
	}
	transactionRepo, trErr := uow.GetRepositoryAs[TransactionRepository](u,
		uow.RepositoryName(repoargs.TransactionRepoName))
	if trErr != nil {
		return nil, trErr //nolint:wrapcheck
	}
	if scope != ReportScopeAccount {
		scope = ReportScopeBank
	}
	return &ReportService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		scope:           scope,
	}, nil
}

// Report возвращает журнал счета юзера.
//
// Если заданы обе даты, в отчет попадают записи, дата создания которых (календарный день, UTC) лежит
// в диапазоне [start, end] включительно, а баланс отчета - сумма amount записей за период в границах scope.
// Иначе возвращаются все записи счета и его текущий баланс.
func (r *ReportService) Report(ctx context.Context, userID int64, start, end *time.Time) (*Report, error) {
	account, accErr := r.accountRepo.GetByUserID(ctx, userID)
	if accErr != nil {
		return nil, fmt.Errorf("building report for user %d: %w", userID, accErr)
	}

	report := Report{Account: account, Balance: account.Balance}
	var filter repoargs.TransactionFilter
	if start != nil && end != nil {
		report.Range = &repoargs.DateRange{From: *start, To: *end}
		filter.Range = report.Range
	}

	transactions, trErr := r.transactionRepo.GetByAccountID(ctx, account.ID, filter)
	if trErr != nil {
		return nil, fmt.Errorf("building report for user %d: %w", userID, trErr)
	}
	report.Transactions = transactions

	if report.Range != nil {
		var accountID *int64
		if r.scope == ReportScopeAccount {
			accountID = &account.ID
		}
		sum, sumErr := r.transactionRepo.SumAmounts(ctx, accountID, *report.Range)
		if sumErr != nil {
			return nil, fmt.Errorf("building report for user %d: %w", userID, sumErr)
		}
		report.Balance = sum
	}
	return &report, nil
}
