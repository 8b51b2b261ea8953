package repoargs

import "github.com/fsdevblog/groph-bank/internal/domain"

type CreateUser struct {
	Username  string
	Password  string
	Email     string
	FirstName string
	LastName  string
	Role      domain.RoleType
}

type UpdateUser struct {
	Email     string
	FirstName string
	LastName  string
}

type UpsertAddress struct {
	UserID     int64
	Street     string
	City       string
	PostalCode int32
	Country    string
}
