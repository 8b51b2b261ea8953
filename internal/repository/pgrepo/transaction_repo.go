package pgrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/pkg/uow"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, created_at, updated_at, account_id, amount, transaction_type,
	balance_after_transaction, loan_approve`

type TransactionRepository struct {
	conn uow.DBTX
}

func NewTransactionRepository(conn uow.DBTX) *TransactionRepository {
	return &TransactionRepository{conn: conn}
}

func (t *TransactionRepository) Create(
	ctx context.Context,
	args repoargs.CreateTransaction,
) (*domain.Transaction, error) {
	row := t.conn.QueryRow(ctx, `
		INSERT INTO transactions (account_id, amount, transaction_type, balance_after_transaction, loan_approve)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+transactionColumns,
		args.AccountID, args.Amount, string(args.Type), args.BalanceAfter, args.LoanApprove,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "creating %s transaction for account %d", args.Type, args.AccountID)
	}
	return transaction, nil
}

// LockByID возвращает запись журнала, блокируя ее до конца транзакции.
func (t *TransactionRepository) LockByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := t.conn.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "locking transaction %d", id)
	}
	return transaction, nil
}

// UpdateLoan перезаписывает тип, снимок баланса и флаг одобрения кредитной записи.
func (t *TransactionRepository) UpdateLoan(ctx context.Context, args repoargs.UpdateLoan) (*domain.Transaction, error) {
	row := t.conn.QueryRow(ctx, `
		UPDATE transactions
		SET transaction_type = $2, balance_after_transaction = $3, loan_approve = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+transactionColumns,
		args.ID, string(args.Type), args.BalanceAfter, args.LoanApprove,
	)
	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, convertErr(err, "updating loan %d", args.ID)
	}
	return transaction, nil
}

// CountApprovedLoans количество одобренных и еще не погашенных кредитов счета.
func (t *TransactionRepository) CountApprovedLoans(ctx context.Context, accountID int64) (int64, error) {
	var count int64
	err := t.conn.QueryRow(ctx, `
		SELECT count(*) FROM transactions
		WHERE account_id = $1 AND transaction_type = $2 AND loan_approve`,
		accountID, string(domain.TransactionLoan),
	).Scan(&count)
	if err != nil {
		return 0, convertErr(err, "counting approved loans of account %d", accountID)
	}
	return count, nil
}

// GetByAccountID возвращает журнал счета в порядке добавления записей (по id).
func (t *TransactionRepository) GetByAccountID(
	ctx context.Context,
	accountID int64,
	filter repoargs.TransactionFilter,
) ([]domain.Transaction, error) {
	where, args := buildTransactionFilter(filter, "account_id = $1")
	rows, err := t.conn.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE `+where+` ORDER BY id`,
		append([]any{accountID}, args...)...,
	)
	if err != nil {
		return nil, convertErr(err, "getting transactions of account %d", accountID)
	}
	transactions, collectErr := collectTransactions(rows)
	if collectErr != nil {
		return nil, convertErr(collectErr, "getting transactions of account %d", accountID)
	}
	return transactions, nil
}

// GetPendingLoans кредитные заявки всех счетов, ожидающие одобрения, от старых к новым.
func (t *TransactionRepository) GetPendingLoans(ctx context.Context, limit uint) ([]domain.Transaction, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	rows, err := t.conn.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE transaction_type = $1 AND NOT loan_approve
		ORDER BY id
		LIMIT $2`,
		string(domain.TransactionLoan), safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "getting pending loans")
	}
	transactions, collectErr := collectTransactions(rows)
	if collectErr != nil {
		return nil, convertErr(collectErr, "getting pending loans")
	}
	return transactions, nil
}

// SumAmounts сумма amount записей в диапазоне дат. Если accountID == nil, суммируются записи всех счетов.
func (t *TransactionRepository) SumAmounts(
	ctx context.Context,
	accountID *int64,
	dateRange repoargs.DateRange,
) (decimal.Decimal, error) {
	where, args := buildTransactionFilter(repoargs.TransactionFilter{Range: &dateRange}, "TRUE")
	if accountID != nil {
		args = append(args, *accountID)
		where += fmt.Sprintf(" AND account_id = $%d", len(args))
	}
	var sum decimal.Decimal
	if err := t.conn.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE `+where,
		args...,
	).Scan(&sum); err != nil {
		return decimal.Zero, convertErr(err, "summing transaction amounts")
	}
	return sum, nil
}

// buildTransactionFilter собирает условие WHERE по фильтру. base может содержать уже занятые плейсхолдеры
// ($1 ...), нумерация новых аргументов продолжается после них.
func buildTransactionFilter(filter repoargs.TransactionFilter, base string) (string, []any) {
	offset := strings.Count(base, "$")
	conditions := []string{base}
	var args []any

	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, tt := range filter.Types {
			types[i] = string(tt)
		}
		args = append(args, types)
		conditions = append(conditions, fmt.Sprintf("transaction_type = ANY($%d)", offset+len(args)))
	}

	if filter.Range != nil {
		args = append(args, filter.Range.From, filter.Range.To)
		conditions = append(conditions, fmt.Sprintf(
			"(created_at AT TIME ZONE 'UTC')::date BETWEEN $%d::date AND $%d::date",
			offset+len(args)-1, offset+len(args),
		))
	}
	return strings.Join(conditions, " AND "), args
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Transaction, error) { //nolint:wrapcheck
		transaction, err := scanTransaction(row)
		if err != nil {
			return domain.Transaction{}, err
		}
		return *transaction, nil
	})
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var transaction domain.Transaction
	var transactionType string
	if err := row.Scan(
		&transaction.ID,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
		&transaction.AccountID,
		&transaction.Amount,
		&transactionType,
		&transaction.BalanceAfter,
		&transaction.LoanApprove,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	transaction.Type = domain.TransactionType(transactionType)
	return &transaction, nil
}
