package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/pkg/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var notificationSubjects = map[domain.NotificationTemplate]string{
	domain.TemplateDeposit:          "Deposit Money",
	domain.TemplateWithdraw:         "Withdraw Money",
	domain.TemplateLoanRequest:      "Loan Request Message",
	domain.TemplateLoanApproval:     "Loan Approval",
	domain.TemplateLoanPaid:         "Loan Paid",
	domain.TemplateTransferSent:     "Transfer Money",
	domain.TemplateTransferReceived: "Transfer Money",
	domain.TemplatePasswordChanged:  "Password Changed Successfully",
}

// notice уведомление, которое нужно положить в outbox вместе с денежной операцией.
type notice struct {
	userID       int64
	template     domain.NotificationTemplate
	amount       decimal.NullDecimal
	counterparty string
}

func moneyNotice(userID int64, template domain.NotificationTemplate, amount decimal.Decimal) notice {
	return notice{
		userID:   userID,
		template: template,
		amount:   decimal.NewNullDecimal(amount),
	}
}

// enqueueNotifications пишет уведомления в outbox в рамках транзакции tx. Отправкой занимается
// асинхронный обработчик, поэтому сбой почты не откатывает денежную операцию.
func enqueueNotifications(ctx context.Context, tx uow.TX, notices ...notice) error {
	repo, repoErr := uow.GetAs[NotificationRepository](tx, uow.RepositoryName(repoargs.NotificationRepoName))
	if repoErr != nil {
		return repoErr //nolint:wrapcheck
	}
	for _, n := range notices {
		id, idErr := uuid.NewV7()
		if idErr != nil {
			return fmt.Errorf("generating notification id: %w", idErr)
		}
		if err := repo.Create(ctx, repoargs.CreateNotification{
			ID:           id,
			UserID:       n.userID,
			Template:     n.template,
			Subject:      notificationSubjects[n.template],
			Amount:       n.amount,
			Counterparty: n.counterparty,
		}); err != nil {
			return err //nolint:wrapcheck
		}
	}
	return nil
}

const (
	defaultRetryBase = 30 * time.Second
	defaultRetryMax  = 30 * time.Minute
)

type NotificationService struct {
	uow              uow.UOW
	notificationRepo NotificationRepository
	retryBase        time.Duration
	retryMax         time.Duration
}

func NewNotificationService(u uow.UOW) (*NotificationService, error) {
	repo, err := uow.GetRepositoryAs[NotificationRepository](u, uow.RepositoryName(repoargs.NotificationRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &NotificationService{
		uow:              u,
		notificationRepo: repo,
		retryBase:        defaultRetryBase,
		retryMax:         defaultRetryMax,
	}, nil
}

// SetRetryBackoff задает задержку повторной отправки после первой неудачи и ее верхнюю границу.
// Нулевые значения игнорируются.
func (n *NotificationService) SetRetryBackoff(base, maxDelay time.Duration) *NotificationService {
	if base > 0 {
		n.retryBase = base
	}
	if maxDelay > 0 {
		n.retryMax = maxDelay
	}
	if n.retryMax < n.retryBase {
		n.retryMax = n.retryBase
	}
	return n
}

// PendingNotifications возвращает уведомления, ожидающие отправки.
func (n *NotificationService) PendingNotifications(ctx context.Context, limit uint) ([]domain.Notification, error) {
	notifications, err := n.notificationRepo.GetPending(ctx, limit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return notifications, nil
}

type DeliveryResult struct {
	Error          error
	NotificationID uuid.UUID
}

// ReportDelivery фиксирует результаты отправки: успешные помечаются отправленными, для неудачных
// увеличивается счетчик попыток и откладывается следующая попытка, по исчерпании maxAttempts уведомление
// получает статус failed.
func (n *NotificationService) ReportDelivery(ctx context.Context, results []DeliveryResult, maxAttempts uint) error {
	sent := make([]uuid.UUID, 0, len(results))
	failed := make([]repoargs.NotificationAttempt, 0, len(results))
	for _, r := range results {
		if r.Error == nil {
			sent = append(sent, r.NotificationID)
		} else {
			failed = append(failed, repoargs.NotificationAttempt{
				ID:          r.NotificationID,
				MaxAttempts: maxAttempts,
				RetryBase:   n.retryBase,
				RetryMax:    n.retryMax,
			})
		}
	}

	txErr := n.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[NotificationRepository](tx, uow.RepositoryName(repoargs.NotificationRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		// batchErr хранит последнюю ошибку батча, остальные не несут дополнительной информации.
		var batchErr error
		collect := func(_ int, err error) {
			if err != nil {
				batchErr = err
			}
		}
		if len(sent) > 0 {
			repo.MarkSent(c, sent, collect)
		}
		if len(failed) > 0 {
			repo.IncrementAttempts(c, failed, collect)
		}
		return batchErr
	})
	if txErr != nil {
		return fmt.Errorf("reporting notification delivery: %w", txErr)
	}
	return nil
}
