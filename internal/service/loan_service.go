package service

import (
	"context"
	"fmt"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/pkg/uow"
	"github.com/shopspring/decimal"
)

type LoanService struct {
	uow             uow.UOW
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
}

func NewLoanService(u uow.UOW) (*LoanService, error) {
	accountRepo, accErr := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if accErr != nil {
		return nil, accErr //nolint:wrapcheck
	}
	transactionRepo, trErr := uow.GetRepositoryAs[TransactionRepository](u,
		uow.RepositoryName(repoargs.TransactionRepoName))
	if trErr != nil {
		return nil, trErr //nolint:wrapcheck
	}
	return &LoanService{
		uow:             u,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}, nil
}

// RequestLoan создает заявку на кредит. Заявка не меняет баланс до одобрения администратором.
// Если у счета уже MaxApprovedLoans одобренных кредитов, заявка отклоняется и запись не создается.
func (l *LoanService) RequestLoan(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
) (*domain.Transaction, error) {
	if err := ValidateLoan(amount); err != nil {
		return nil, err
	}

	var loan *domain.Transaction
	txErr := l.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accounts, transactions, repoErr := ledgerRepos(tx)
		if repoErr != nil {
			return repoErr
		}
		account, lockErr := accounts.LockByUserID(c, userID)
		if lockErr != nil {
			return lockErr //nolint:wrapcheck
		}
		approved, countErr := transactions.CountApprovedLoans(c, account.ID)
		if countErr != nil {
			return countErr //nolint:wrapcheck
		}
		if err := CheckLoanLimit(approved); err != nil {
			return err
		}

		var createErr error
		loan, createErr = transactions.Create(c, repoargs.CreateTransaction{
			AccountID:    account.ID,
			Amount:       amount,
			Type:         domain.TransactionLoan,
			BalanceAfter: account.Balance,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}
		return enqueueNotifications(c, tx, moneyNotice(userID, domain.TemplateLoanRequest, amount))
	})
	if txErr != nil {
		return nil, fmt.Errorf("requesting loan for user %d: %w", userID, txErr)
	}
	return loan, nil
}

// ApproveLoan одобряет заявку loanID и зачисляет сумму кредита на счет заемщика.
// Требует разрешения domain.PermApproveLoans, иначе возвращает domain.ErrForbidden.
func (l *LoanService) ApproveLoan(ctx context.Context, actor domain.Actor, loanID int64) (*domain.Transaction, error) {
	if !actor.Can(domain.PermApproveLoans) {
		return nil, fmt.Errorf("approving loan %d by user %d: %w", loanID, actor.UserID, domain.ErrForbidden)
	}

	var loan *domain.Transaction
	txErr := l.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accounts, transactions, repoErr := ledgerRepos(tx)
		if repoErr != nil {
			return repoErr
		}
		pending, loanErr := lockLoan(c, transactions, loanID)
		if loanErr != nil {
			return loanErr
		}
		if pending.LoanApprove {
			return domain.NewRejectionError(domain.ErrLoanAlreadyApproved, "Loan is already approved")
		}

		account, lockErr := accounts.LockByID(c, pending.AccountID)
		if lockErr != nil {
			return lockErr //nolint:wrapcheck
		}
		newBalance := account.Balance.Add(pending.Amount)
		if err := CheckBalanceLimit(newBalance); err != nil {
			return err
		}
		updated, updErr := accounts.UpdateBalance(c, account.ID, newBalance)
		if updErr != nil {
			return updErr //nolint:wrapcheck
		}

		var err error
		loan, err = transactions.UpdateLoan(c, repoargs.UpdateLoan{
			ID:           pending.ID,
			Type:         domain.TransactionLoan,
			BalanceAfter: updated.Balance,
			LoanApprove:  true,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}
		return enqueueNotifications(c, tx, moneyNotice(account.UserID, domain.TemplateLoanApproval, pending.Amount))
	})
	if txErr != nil {
		return nil, fmt.Errorf("approving loan %d: %w", loanID, txErr)
	}
	return loan, nil
}

// PayLoan гасит одобренный кредит loanID со счета юзера. Кредит чужого счета считается ненайденным.
func (l *LoanService) PayLoan(ctx context.Context, userID int64, loanID int64) (*domain.Transaction, error) {
	var loan *domain.Transaction
	txErr := l.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accounts, transactions, repoErr := ledgerRepos(tx)
		if repoErr != nil {
			return repoErr
		}
		// порядок блокировок как в ApproveLoan: сначала кредит, потом счет.
		current, loanErr := lockLoan(c, transactions, loanID)
		if loanErr != nil {
			return loanErr
		}
		account, lockErr := accounts.LockByUserID(c, userID)
		if lockErr != nil {
			return lockErr //nolint:wrapcheck
		}
		if current.AccountID != account.ID {
			return fmt.Errorf("loan %d of account %d: %w", loanID, account.ID, domain.ErrRecordNotFound)
		}
		if err := ValidateLoanRepayment(current, account.Balance); err != nil {
			return err
		}

		updated, updErr := accounts.UpdateBalance(c, account.ID, account.Balance.Sub(current.Amount))
		if updErr != nil {
			return updErr //nolint:wrapcheck
		}
		var err error
		loan, err = transactions.UpdateLoan(c, repoargs.UpdateLoan{
			ID:           current.ID,
			Type:         domain.TransactionLoanPaid,
			BalanceAfter: updated.Balance,
			LoanApprove:  true,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}
		return enqueueNotifications(c, tx, moneyNotice(userID, domain.TemplateLoanPaid, current.Amount))
	})
	if txErr != nil {
		return nil, fmt.Errorf("paying loan %d by user %d: %w", loanID, userID, txErr)
	}
	return loan, nil
}

// ListLoans кредиты счета юзера (заявки, одобренные и погашенные) в порядке создания.
func (l *LoanService) ListLoans(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	account, accErr := l.accountRepo.GetByUserID(ctx, userID)
	if accErr != nil {
		return nil, fmt.Errorf("listing loans of user %d: %w", userID, accErr)
	}
	loans, err := l.transactionRepo.GetByAccountID(ctx, account.ID, repoargs.TransactionFilter{
		Types: []domain.TransactionType{domain.TransactionLoan, domain.TransactionLoanPaid},
	})
	if err != nil {
		return nil, fmt.Errorf("listing loans of user %d: %w", userID, err)
	}
	return loans, nil
}

// PendingLoans заявки всех счетов, ожидающие одобрения. Требует разрешения domain.PermViewAllLoans.
func (l *LoanService) PendingLoans(ctx context.Context, actor domain.Actor, limit uint) ([]domain.Transaction, error) {
	if !actor.Can(domain.PermViewAllLoans) {
		return nil, fmt.Errorf("listing pending loans by user %d: %w", actor.UserID, domain.ErrForbidden)
	}
	loans, err := l.transactionRepo.GetPendingLoans(ctx, limit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return loans, nil
}

// lockLoan блокирует кредитную запись. Запись другого типа считается ненайденной.
func lockLoan(ctx context.Context, transactions TransactionRepository, loanID int64) (*domain.Transaction, error) {
	loan, err := transactions.LockByID(ctx, loanID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if loan.Type != domain.TransactionLoan && loan.Type != domain.TransactionLoanPaid {
		return nil, fmt.Errorf("transaction %d is not a loan: %w", loanID, domain.ErrRecordNotFound)
	}
	return loan, nil
}
