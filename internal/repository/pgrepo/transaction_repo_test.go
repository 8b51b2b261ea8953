package pgrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sumRow строка результата SumAmounts.
type sumRow struct {
	sum decimal.Decimal
	err error
}

func (r sumRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*decimal.Decimal) = r.sum
	return nil
}

func TestBuildTransactionFilter(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	dateRange := &repoargs.DateRange{From: from, To: to}

	cases := []struct {
		name      string
		filter    repoargs.TransactionFilter
		base      string
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "empty filter keeps base",
			base:      "account_id = $1",
			wantWhere: "account_id = $1",
		},
		{
			name:      "types without taken placeholders",
			filter:    repoargs.TransactionFilter{Types: []domain.TransactionType{domain.TransactionDeposit}},
			base:      "TRUE",
			wantWhere: "TRUE AND transaction_type = ANY($1)",
			wantArgs:  []any{[]string{"deposit"}},
		},
		{
			name:      "types continue after $1",
			filter:    repoargs.TransactionFilter{Types: []domain.TransactionType{domain.TransactionDeposit}},
			base:      "account_id = $1",
			wantWhere: "account_id = $1 AND transaction_type = ANY($2)",
			wantArgs:  []any{[]string{"deposit"}},
		},
		{
			name:      "range is inclusive by calendar date",
			filter:    repoargs.TransactionFilter{Range: dateRange},
			base:      "TRUE",
			wantWhere: "TRUE AND (created_at AT TIME ZONE 'UTC')::date BETWEEN $1::date AND $2::date",
			wantArgs:  []any{from, to},
		},
		{
			name: "types and range after $1",
			filter: repoargs.TransactionFilter{
				Types: []domain.TransactionType{domain.TransactionLoan, domain.TransactionLoanPaid},
				Range: dateRange,
			},
			base: "account_id = $1",
			wantWhere: "account_id = $1 AND transaction_type = ANY($2) AND " +
				"(created_at AT TIME ZONE 'UTC')::date BETWEEN $3::date AND $4::date",
			wantArgs: []any{[]string{"loan", "loan_paid"}, from, to},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			where, args := buildTransactionFilter(tc.filter, tc.base)
			assert.Equal(t, tc.wantWhere, where)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestSumAmounts(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	accountID := int64(7)

	t.Run("single account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		conn := mocks.NewMockDBTX(ctrl)

		// аргументы диапазона идут первыми, id счета получает следующий плейсхолдер.
		conn.EXPECT().
			QueryRow(gomock.Any(), gomock.Any(), from, to, accountID).
			DoAndReturn(func(_ context.Context, sql string, _ ...any) pgx.Row {
				assert.Contains(t, sql, "BETWEEN $1::date AND $2::date AND account_id = $3")
				return sumRow{sum: decimal.RequireFromString("125.50")}
			})

		sum, err := NewTransactionRepository(conn).SumAmounts(context.Background(), &accountID,
			repoargs.DateRange{From: from, To: to})
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("125.50").Equal(sum))
	})

	t.Run("whole bank", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		conn := mocks.NewMockDBTX(ctrl)

		conn.EXPECT().
			QueryRow(gomock.Any(), gomock.Any(), from, to).
			DoAndReturn(func(_ context.Context, sql string, _ ...any) pgx.Row {
				assert.NotContains(t, sql, "account_id")
				return sumRow{sum: decimal.Zero}
			})

		sum, err := NewTransactionRepository(conn).SumAmounts(context.Background(), nil,
			repoargs.DateRange{From: from, To: to})
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
	})

	t.Run("scan error is converted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		conn := mocks.NewMockDBTX(ctrl)

		conn.EXPECT().
			QueryRow(gomock.Any(), gomock.Any(), from, to).
			Return(sumRow{err: errors.New("conn reset")})

		_, err := NewTransactionRepository(conn).SumAmounts(context.Background(), nil,
			repoargs.DateRange{From: from, To: to})
		assert.ErrorIs(t, err, domain.ErrUnknown)
	})
}
