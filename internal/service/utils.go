package service

import (
	"errors"

	"github.com/fsdevblog/groph-bank/internal/domain"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrRecordNotFound)
}
