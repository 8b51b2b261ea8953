package notifier

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/service"
)

type Mailer interface {
	Send(ctx context.Context, msg domain.MailMessage) error
}

type Servicer interface {
	PendingNotifications(ctx context.Context, limit uint) ([]domain.Notification, error)
	ReportDelivery(ctx context.Context, results []service.DeliveryResult, maxAttempts uint) error
}
