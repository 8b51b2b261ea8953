package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/pkg/uow"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, created_at, updated_at, user_id, account_type, account_no, birth_date, gender,
	opened_date, balance`

type AccountRepository struct {
	conn uow.DBTX
}

func NewAccountRepository(conn uow.DBTX) *AccountRepository {
	return &AccountRepository{conn: conn}
}

// Create открывает счет с нулевым балансом. Конфликт номера счета или повторный счет юзера - domain.ErrDuplicateKey.
func (a *AccountRepository) Create(ctx context.Context, args repoargs.CreateAccount) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `
		INSERT INTO bank_accounts (user_id, account_type, account_no, birth_date, gender)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+accountColumns,
		args.UserID, string(args.AccountType), args.AccountNo, args.BirthDate, string(args.Gender),
	)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "creating account for user %d", args.UserID)
	}
	return account, nil
}

func (a *AccountRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM bank_accounts WHERE user_id = $1`, userID)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "getting account by userID %d", userID)
	}
	return account, nil
}

func (a *AccountRepository) GetByAccountNo(ctx context.Context, accountNo string) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM bank_accounts WHERE account_no = $1`, accountNo)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "getting account by number `%s`", accountNo)
	}
	return account, nil
}

// LockByUserID возвращает счет юзера, блокируя строку до конца транзакции (SELECT ... FOR UPDATE).
func (a *AccountRepository) LockByUserID(ctx context.Context, userID int64) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM bank_accounts WHERE user_id = $1 FOR UPDATE`,
		userID,
	)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "locking account by userID %d", userID)
	}
	return account, nil
}

func (a *AccountRepository) LockByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `SELECT `+accountColumns+` FROM bank_accounts WHERE id = $1 FOR UPDATE`, id)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "locking account by id %d", id)
	}
	return account, nil
}

// LockByIDs блокирует несколько счетов строго в порядке возрастания id, чтобы встречные переводы не
// приводили к дедлоку. Отсутствующие id в результат не попадают.
func (a *AccountRepository) LockByIDs(ctx context.Context, ids []int64) ([]domain.Account, error) {
	rows, err := a.conn.Query(ctx,
		`SELECT `+accountColumns+` FROM bank_accounts WHERE id = ANY($1) ORDER BY id FOR UPDATE`,
		ids,
	)
	if err != nil {
		return nil, convertErr(err, "locking accounts `%v`", ids)
	}
	accounts, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Account, error) {
		account, scanErr := scanAccount(row)
		if scanErr != nil {
			return domain.Account{}, scanErr
		}
		return *account, nil
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "locking accounts `%v`", ids)
	}
	return accounts, nil
}

func (a *AccountRepository) UpdateBalance(
	ctx context.Context,
	id int64,
	balance decimal.Decimal,
) (*domain.Account, error) {
	row := a.conn.QueryRow(ctx, `
		UPDATE bank_accounts SET balance = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+accountColumns,
		id, balance,
	)
	account, err := scanAccount(row)
	if err != nil {
		return nil, convertErr(err, "updating balance of account %d", id)
	}
	return account, nil
}

// TotalBalance сумма балансов всех счетов банка.
func (a *AccountRepository) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := a.conn.QueryRow(ctx, `SELECT COALESCE(SUM(balance), 0) FROM bank_accounts`).Scan(&total); err != nil {
		return decimal.Zero, convertErr(err, "summing balances")
	}
	return total, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	var accountType, gender string
	if err := row.Scan(
		&account.ID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&account.UserID,
		&accountType,
		&account.AccountNo,
		&account.BirthDate,
		&gender,
		&account.OpenedDate,
		&account.Balance,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	account.AccountType = domain.AccountType(accountType)
	account.Gender = domain.GenderType(gender)
	return &account, nil
}
