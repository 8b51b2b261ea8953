package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/pkg/uow"
)

type AddressRepository struct {
	conn uow.DBTX
}

func NewAddressRepository(conn uow.DBTX) *AddressRepository {
	return &AddressRepository{conn: conn}
}

// Upsert создает или перезаписывает адрес юзера (у юзера не больше одного адреса).
func (a *AddressRepository) Upsert(ctx context.Context, args repoargs.UpsertAddress) (*domain.Address, error) {
	var address domain.Address
	err := a.conn.QueryRow(ctx, `
		INSERT INTO user_addresses (user_id, street_address, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		    SET street_address = excluded.street_address,
		        city           = excluded.city,
		        postal_code    = excluded.postal_code,
		        country        = excluded.country
		RETURNING id, user_id, street_address, city, postal_code, country`,
		args.UserID, args.Street, args.City, args.PostalCode, args.Country,
	).Scan(&address.ID, &address.UserID, &address.Street, &address.City, &address.PostalCode, &address.Country)
	if err != nil {
		return nil, convertErr(err, "upserting address for user %d", args.UserID)
	}
	return &address, nil
}

func (a *AddressRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Address, error) {
	var address domain.Address
	err := a.conn.QueryRow(ctx, `
		SELECT id, user_id, street_address, city, postal_code, country
		FROM user_addresses WHERE user_id = $1`,
		userID,
	).Scan(&address.ID, &address.UserID, &address.Street, &address.City, &address.PostalCode, &address.Country)
	if err != nil {
		return nil, convertErr(err, "finding address for user %d", userID)
	}
	return &address, nil
}
