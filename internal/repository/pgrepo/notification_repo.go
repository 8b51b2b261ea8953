package pgrepo

import (
	"context"
	"errors"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type NotificationRepository struct {
	conn uow.DBTX
}

func NewNotificationRepository(conn uow.DBTX) *NotificationRepository {
	return &NotificationRepository{conn: conn}
}

func (n *NotificationRepository) Create(ctx context.Context, args repoargs.CreateNotification) error {
	_, err := n.conn.Exec(ctx, `
		INSERT INTO notifications (id, user_id, template, subject, amount, counterparty)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		args.ID, args.UserID, string(args.Template), args.Subject, args.Amount, args.Counterparty,
	)
	if err != nil {
		return convertErr(err, "creating `%s` notification for user %d", args.Template, args.UserID)
	}
	return nil
}

// GetPending возвращает неотправленные уведомления, время повторной попытки которых наступило, вместе
// с адресом и именем получателя, от старых к новым.
func (n *NotificationRepository) GetPending(ctx context.Context, limit uint) ([]domain.Notification, error) {
	safeLimit, safeLimitErr := safeConvertUintToInt32(limit)
	if safeLimitErr != nil {
		return nil, convertErr(safeLimitErr, "converting limit to int32")
	}
	rows, err := n.conn.Query(ctx, `
		SELECT n.id, n.created_at, n.updated_at, n.user_id, n.template, n.subject, n.amount, n.counterparty,
		       n.status, n.attempts, n.sent_at, u.email, u.username
		FROM notifications n
		         JOIN users u ON u.id = n.user_id
		WHERE n.status = $1
		  AND n.next_attempt_at <= now()
		ORDER BY n.created_at
		LIMIT $2`,
		string(domain.NotificationStatusPending), safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "getting pending notifications")
	}
	notifications, collectErr := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Notification, error) {
		var nt domain.Notification
		var template, status string
		var attempts int32
		scanErr := row.Scan(
			&nt.ID, &nt.CreatedAt, &nt.UpdatedAt, &nt.UserID, &template, &nt.Subject, &nt.Amount,
			&nt.Counterparty, &status, &attempts, &nt.SentAt, &nt.RecipientEmail, &nt.RecipientName,
		)
		nt.Template = domain.NotificationTemplate(template)
		nt.Status = domain.NotificationStatusType(status)
		nt.Attempts = uint(max(attempts, 0))
		return nt, scanErr
	})
	if collectErr != nil {
		return nil, convertErr(collectErr, "getting pending notifications")
	}
	return notifications, nil
}

// MarkSent батчем помечает уведомления отправленными.
func (n *NotificationRepository) MarkSent(ctx context.Context, ids []uuid.UUID, fn repoargs.BatchExecQueryRow) {
	batch := new(pgx.Batch)
	for _, id := range ids {
		batch.Queue(`
			UPDATE notifications SET status = $2, sent_at = now(), updated_at = now()
			WHERE id = $1`,
			id, string(domain.NotificationStatusSent),
		)
	}
	n.execBatch(ctx, batch, fn, "marking notifications sent")
}

// IncrementAttempts батчем увеличивает счетчик неудачных попыток и откладывает следующую попытку
// с экспоненциальной задержкой. Уведомление, исчерпавшее MaxAttempts, переводится в статус failed и больше
// не выбирается на отправку.
func (n *NotificationRepository) IncrementAttempts(
	ctx context.Context,
	attempts []repoargs.NotificationAttempt,
	fn repoargs.BatchExecQueryRow,
) {
	batch := new(pgx.Batch)
	for _, attempt := range attempts {
		maxAttempts, convErr := safeConvertUintToInt32(attempt.MaxAttempts)
		if convErr != nil {
			maxAttempts = 1
		}
		// в SET attempts - значение до увеличения, поэтому первая задержка равна RetryBase.
		batch.Queue(`
			UPDATE notifications
			SET attempts        = attempts + 1,
			    status          = CASE WHEN attempts + 1 >= $2 THEN $3 ELSE status END,
			    next_attempt_at = now() + make_interval(secs => LEAST($4::float8 * power(2, attempts), $5::float8)),
			    updated_at      = now()
			WHERE id = $1`,
			attempt.ID, maxAttempts, string(domain.NotificationStatusFailed),
			attempt.RetryBase.Seconds(), attempt.RetryMax.Seconds(),
		)
	}
	n.execBatch(ctx, batch, fn, "incrementing notification attempts")
}

func (n *NotificationRepository) execBatch(
	ctx context.Context,
	batch *pgx.Batch,
	fn repoargs.BatchExecQueryRow,
	msg string,
) {
	if batch.Len() == 0 {
		return
	}
	results := n.conn.SendBatch(ctx, batch)
	for i := range batch.Len() {
		_, err := results.Exec()
		fn(i, convertErr(err, "%s", msg))
	}
	if closeErr := results.Close(); closeErr != nil && !errors.Is(closeErr, pgx.ErrTxClosed) {
		fn(batch.Len()-1, convertErr(closeErr, "%s", msg))
	}
}
