package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/pkg/uow"
	"github.com/shopspring/decimal"
)

type TransactionService struct {
	uow         uow.UOW
	accountRepo AccountRepository
}

func NewTransactionService(u uow.UOW) (*TransactionService, error) {
	accountRepo, err := uow.GetRepositoryAs[AccountRepository](u, uow.RepositoryName(repoargs.AccountRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &TransactionService{
		uow:         u,
		accountRepo: accountRepo,
	}, nil
}

// GetAccount возвращает текущее состояние счета юзера.
func (t *TransactionService) GetAccount(ctx context.Context, userID int64) (*domain.Account, error) {
	account, err := t.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return account, nil
}

// Deposit зачисляет amount на счет юзера. Возвращает созданную запись журнала.
func (t *TransactionService) Deposit(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
) (*domain.Transaction, error) {
	if err := ValidateDeposit(amount); err != nil {
		return nil, err
	}

	var transaction *domain.Transaction
	txErr := t.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accounts, transactions, repoErr := ledgerRepos(tx)
		if repoErr != nil {
			return repoErr
		}
		account, lockErr := accounts.LockByUserID(c, userID)
		if lockErr != nil {
			return lockErr //nolint:wrapcheck
		}

		var err error
		transaction, err = applyToAccount(c, accounts, transactions, account, amount, amount, domain.TransactionDeposit)
		if err != nil {
			return err
		}
		return enqueueNotifications(c, tx, moneyNotice(userID, domain.TemplateDeposit, amount))
	})
	if txErr != nil {
		return nil, fmt.Errorf("depositing to account of user %d: %w", userID, txErr)
	}
	return transaction, nil
}

// Withdraw списывает amount со счета юзера.
//
// Помимо лимитов и остатка на счете проверяется платежеспособность банка: сумма балансов всех счетов
// должна покрывать amount. При отказе ничего не изменяется.
func (t *TransactionService) Withdraw(
	ctx context.Context,
	userID int64,
	amount decimal.Decimal,
) (*domain.Transaction, error) {
	var transaction *domain.Transaction
	txErr := t.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accounts, transactions, repoErr := ledgerRepos(tx)
		if repoErr != nil {
			return repoErr
		}
		account, lockErr := accounts.LockByUserID(c, userID)
		if lockErr != nil {
			return lockErr //nolint:wrapcheck
		}
		if err := ValidateWithdraw(amount, account.Balance); err != nil {
			return err
		}

		bankTotal, totalErr := accounts.TotalBalance(c)
		if totalErr != nil {
			return totalErr //nolint:wrapcheck
		}
		if err := CheckSolvency(amount, bankTotal); err != nil {
			return err
		}

		// в журнал снятие пишется положительной суммой, знак задает тип операции.
		var err error
		transaction, err = applyToAccount(c, accounts, transactions, account, amount.Neg(), amount,
			domain.TransactionWithdrawal)
		if err != nil {
			return err
		}
		return enqueueNotifications(c, tx, moneyNotice(userID, domain.TemplateWithdraw, amount))
	})
	if txErr != nil {
		return nil, fmt.Errorf("withdrawing from account of user %d: %w", userID, txErr)
	}
	return transaction, nil
}

// Transfer переводит amount со счета юзера на счет с номером receiverAccountNo.
//
// Алгоритм работы:
//  1. Находит счет получателя. Отсутствие счета или перевод самому себе - отказ.
//  2. Блокирует оба счета в порядке возрастания id.
//  3. Проверяет правило перевода по заблокированным (актуальным) балансам.
//  4. Обновляет балансы и пишет две записи журнала: -amount отправителю, +amount получателю.
//  5. Кладет в outbox уведомления обеим сторонам.
//
// Все шаги выполняются в одной транзакции. Возвращает запись журнала отправителя.
func (t *TransactionService) Transfer(
	ctx context.Context,
	userID int64,
	receiverAccountNo string,
	amount decimal.Decimal,
) (*domain.Transaction, error) {
	var transaction *domain.Transaction
	txErr := t.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		accounts, transactions, repoErr := ledgerRepos(tx)
		if repoErr != nil {
			return repoErr
		}

		sender, receiver, resolveErr := resolveTransferParties(c, accounts, userID, receiverAccountNo)
		if resolveErr != nil {
			return resolveErr
		}
		if err := ValidateTransfer(sender, receiver, amount); err != nil {
			return err
		}

		var err error
		transaction, err = applyToAccount(c, accounts, transactions, sender, amount.Neg(), amount.Neg(),
			domain.TransactionTransfer)
		if err != nil {
			return err
		}
		if _, err = applyToAccount(c, accounts, transactions, receiver, amount, amount,
			domain.TransactionTransfer); err != nil {
			return err
		}

		sent := moneyNotice(sender.UserID, domain.TemplateTransferSent, amount)
		sent.counterparty = receiver.AccountNo
		received := moneyNotice(receiver.UserID, domain.TemplateTransferReceived, amount)
		received.counterparty = sender.AccountNo
		return enqueueNotifications(c, tx, sent, received)
	})
	if txErr != nil {
		return nil, fmt.Errorf("transferring from account of user %d: %w", userID, txErr)
	}
	return transaction, nil
}

// resolveTransferParties находит и блокирует счета отправителя и получателя. Если получатель не найден
// или совпадает с отправителем, receiver возвращается без блокировки (nil в первом случае), чтобы правило
// перевода сформировало отказ.
func resolveTransferParties(
	ctx context.Context,
	accounts AccountRepository,
	userID int64,
	receiverAccountNo string,
) (*domain.Account, *domain.Account, error) {
	sender, senderErr := accounts.GetByUserID(ctx, userID)
	if senderErr != nil {
		return nil, nil, senderErr //nolint:wrapcheck
	}
	receiver, receiverErr := accounts.GetByAccountNo(ctx, receiverAccountNo)
	if receiverErr != nil {
		if errors.Is(receiverErr, domain.ErrRecordNotFound) {
			return sender, nil, nil
		}
		return nil, nil, receiverErr //nolint:wrapcheck
	}
	if receiver.ID == sender.ID {
		return sender, receiver, nil
	}

	ids := []int64{sender.ID, receiver.ID}
	slices.Sort(ids)
	locked, lockErr := accounts.LockByIDs(ctx, ids)
	if lockErr != nil {
		return nil, nil, lockErr //nolint:wrapcheck
	}
	var lockedSender, lockedReceiver *domain.Account
	for i := range locked {
		switch locked[i].ID {
		case sender.ID:
			lockedSender = &locked[i]
		case receiver.ID:
			lockedReceiver = &locked[i]
		}
	}
	if lockedSender == nil {
		return nil, nil, fmt.Errorf("locking sender account %d: %w", sender.ID, domain.ErrRecordNotFound)
	}
	return lockedSender, lockedReceiver, nil
}

// applyToAccount изменяет баланс заблокированного счета на delta и пишет запись журнала с суммой
// ledgerAmount и снимком нового баланса. Баланс сверх MaxBalance отклоняется до записи.
func applyToAccount(
	ctx context.Context,
	accounts AccountRepository,
	transactions TransactionRepository,
	account *domain.Account,
	delta decimal.Decimal,
	ledgerAmount decimal.Decimal,
	transactionType domain.TransactionType,
) (*domain.Transaction, error) {
	newBalance := account.Balance.Add(delta)
	if err := CheckBalanceLimit(newBalance); err != nil {
		return nil, err
	}
	updated, updErr := accounts.UpdateBalance(ctx, account.ID, newBalance)
	if updErr != nil {
		return nil, updErr //nolint:wrapcheck
	}
	transaction, createErr := transactions.Create(ctx, repoargs.CreateTransaction{
		AccountID:    updated.ID,
		Amount:       ledgerAmount,
		Type:         transactionType,
		BalanceAfter: updated.Balance,
	})
	if createErr != nil {
		return nil, createErr //nolint:wrapcheck
	}
	return transaction, nil
}

func ledgerRepos(tx uow.TX) (AccountRepository, TransactionRepository, error) {
	accounts, accountsErr := uow.GetAs[AccountRepository](tx, uow.RepositoryName(repoargs.AccountRepoName))
	if accountsErr != nil {
		return nil, nil, accountsErr //nolint:wrapcheck
	}
	transactions, transErr := uow.GetAs[TransactionRepository](tx,
		uow.RepositoryName(repoargs.TransactionRepoName))
	if transErr != nil {
		return nil, nil, transErr //nolint:wrapcheck
	}
	return accounts, transactions, nil
}
