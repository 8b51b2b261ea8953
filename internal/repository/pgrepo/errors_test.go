package pgrepo

import (
	"errors"
	"testing"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertErr(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "no rows", err: pgx.ErrNoRows, wantErr: domain.ErrRecordNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: uniqueViolationCode}, wantErr: domain.ErrDuplicateKey},
		{name: "fk violation", err: &pgconn.PgError{Code: foreignKeyViolationCode}, wantErr: domain.ErrRecordNotFound},
		{name: "numeric overflow", err: &pgconn.PgError{Code: numericOutOfRangeCode},
			wantErr: domain.ErrValueOutOfRange},
		{name: "other pg error", err: &pgconn.PgError{Code: "40001"}, wantErr: domain.ErrUnknown},
		{name: "plain error", err: errors.New("conn reset"), wantErr: domain.ErrUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := convertErr(tc.err, "doing %s", "things")
			require.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), "[repository/doing things]")
		})
	}

	assert.NoError(t, convertErr(nil, "noop"))
}
