// Package notifier доставляет уведомления из outbox асинхронно относительно денежных операций.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/service"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultSendTimeout            = 15 * time.Second
	defaultIdlePause              = 2 * time.Second
	defaultLimitPerIteration uint = 50
	defaultWorkers           uint = 4
	defaultMaxAttempts       uint = 5
)

var (
	ErrNoNotifications = errors.New("no notifications")
	// ErrAllDeliveriesFailed ни одно уведомление итерации не доставлено, вероятно почтовый сервер недоступен.
	ErrAllDeliveriesFailed = errors.New("all deliveries failed")
)

// Processor выбирает ожидающие уведомления, рассылает их пулом воркеров и сообщает сервисному слою
// результат доставки.
type Processor struct {
	svs               Servicer
	mailer            Mailer
	renderer          *Renderer
	l                 *logrus.Entry
	limitPerIteration uint
	workers           uint
	maxAttempts       uint
	idlePause         time.Duration
}

func NewProcessor(svs Servicer, mailer Mailer, renderer *Renderer, l *logrus.Logger) *Processor {
	return &Processor{
		svs:      svs,
		mailer:   mailer,
		renderer: renderer,
		l: l.WithFields(logrus.Fields{
			"component": "notifier",
			"module":    "processor",
		}),
		limitPerIteration: defaultLimitPerIteration,
		workers:           defaultWorkers,
		maxAttempts:       defaultMaxAttempts,
		idlePause:         defaultIdlePause,
	}
}

// SetLimitPerIteration устанавливает кол-во уведомлений, выбираемых за одну итерацию.
func (p *Processor) SetLimitPerIteration(limit uint) *Processor {
	if limit > 0 {
		p.limitPerIteration = limit
	}
	return p
}

// SetWorkers устанавливает кол-во воркеров, параллельно отправляющих письма.
func (p *Processor) SetWorkers(workers uint) *Processor {
	if workers > 0 {
		p.workers = workers
	}
	return p
}

// SetMaxAttempts устанавливает кол-во неудачных попыток, после которого уведомление помечается failed.
func (p *Processor) SetMaxAttempts(attempts uint) *Processor {
	if attempts > 0 {
		p.maxAttempts = attempts
	}
	return p
}

// Run обрабатывает outbox в цикле до отмены контекста. Если уведомлений нет, ни одно не доставлено или
// итерация завершилась ошибкой, выдерживает паузу со случайным разбросом.
func (p *Processor) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"limitPerIteration": p.limitPerIteration,
		"workers":           p.workers,
		"maxAttempts":       p.maxAttempts,
	}).Info("Starting")

	for {
		err := p.process(ctx)
		if err == nil {
			continue
		}
		switch {
		case errors.Is(err, ErrNoNotifications), ctx.Err() != nil:
		case errors.Is(err, ErrAllDeliveriesFailed):
			p.l.WithError(err).Warn("mail delivery is failing, pausing")
		default:
			p.l.WithError(err).Error("process error")
		}

		pause := spreadPause(p.idlePause, idleSpread)
		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(pause):
		}
	}
}

// process выполняет одну итерацию: выборку, рассылку и отчет о доставке.
func (p *Processor) process(ctx context.Context) error {
	notifications, produceErr := p.produce(ctx)
	if produceErr != nil {
		return fmt.Errorf("process: %w", produceErr)
	}

	results := p.runWorkers(ctx, notifications)
	if len(results) == 0 {
		return nil
	}

	var failures *multierror.Error
	deliveries := make([]service.DeliveryResult, 0, len(results))
	for _, result := range results {
		if result.Error != nil {
			failures = multierror.Append(failures,
				fmt.Errorf("notification %s: %w", result.Notification.ID, result.Error))
		}
		deliveries = append(deliveries, service.DeliveryResult{
			NotificationID: result.Notification.ID,
			Error:          result.Error,
		})
	}
	if failures.ErrorOrNil() != nil {
		p.l.WithField("failed", failures.Len()).WithError(failures).Warn("some notifications were not delivered")
	}

	// отчет о доставке пишется даже после отмены ctx, иначе отправленные письма уйдут повторно.
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultServiceTimeout)
	defer cancel()

	if err := p.svs.ReportDelivery(reqCtx, deliveries, p.maxAttempts); err != nil {
		return fmt.Errorf("process: %w", err)
	}
	if failures != nil && failures.Len() == len(results) {
		return fmt.Errorf("process: %w", ErrAllDeliveriesFailed)
	}
	return nil
}

type workerResult struct {
	WorkerID     uint
	Notification *domain.Notification
	Error        error
}

// runWorkers раздает уведомления воркерам и собирает результаты (fan-out/fan-in). Уведомления, до которых
// воркеры не дошли из-за отмены контекста, в результат не попадают и будут выбраны в следующий раз.
func (p *Processor) runWorkers(ctx context.Context, notifications []domain.Notification) []workerResult {
	taskCh := make(chan *domain.Notification, len(notifications))
	for i := range notifications {
		taskCh <- &notifications[i]
	}
	close(taskCh)

	resultCh := make(chan *workerResult, len(notifications))

	wg := new(sync.WaitGroup)
	for i := range p.workers {
		wg.Add(1)
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()
	close(resultCh)

	results := make([]workerResult, 0, len(notifications))
	for result := range resultCh {
		l := p.l.WithFields(logrus.Fields{
			"worker":         result.WorkerID,
			"notificationID": result.Notification.ID,
			"template":       result.Notification.Template,
			"attempt":        result.Notification.Attempts + 1,
		})
		if result.Error != nil {
			l.WithError(result.Error).Error("send notification")
		} else {
			l.Debug("Sent")
		}
		results = append(results, *result)
	}
	return results
}

func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan *domain.Notification,
	resultCh chan<- *workerResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			resultCh <- &workerResult{
				WorkerID:     workerID,
				Notification: task,
				Error:        p.send(ctx, task),
			}
		}
	}
}

func (p *Processor) send(ctx context.Context, n *domain.Notification) error {
	msg, renderErr := p.renderer.Render(*n)
	if renderErr != nil {
		return renderErr
	}
	sendCtx, cancel := context.WithTimeout(ctx, defaultSendTimeout)
	defer cancel()
	return p.mailer.Send(sendCtx, msg) //nolint:wrapcheck
}

// produce возвращает ожидающие уведомления или ErrNoNotifications.
func (p *Processor) produce(ctx context.Context) ([]domain.Notification, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	notifications, err := p.svs.PendingNotifications(produceCtx, p.limitPerIteration)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	if len(notifications) == 0 {
		return nil, ErrNoNotifications
	}
	return notifications, nil
}
