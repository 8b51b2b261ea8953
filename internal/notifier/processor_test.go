package notifier

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/notifier/mocks"
	"github.com/fsdevblog/groph-bank/internal/service"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type ProcessorTestSuite struct {
	suite.Suite
	processor   *Processor
	mockMailer  *mocks.MockMailer
	mockService *mocks.MockServicer
	ctrl        *gomock.Controller
}

func TestProcessorSuite(t *testing.T) {
	suite.Run(t, new(ProcessorTestSuite))
}

func (s *ProcessorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockMailer = mocks.NewMockMailer(s.ctrl)
	s.mockService = mocks.NewMockServicer(s.ctrl)

	renderer, err := NewRenderer()
	s.Require().NoError(err)

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	s.processor = NewProcessor(s.mockService, s.mockMailer, renderer, logger).
		SetWorkers(2).
		SetMaxAttempts(3)
}

func (s *ProcessorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func notification(template domain.NotificationTemplate, email string) domain.Notification {
	return domain.Notification{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		UserID:         1,
		Template:       template,
		Subject:        "Subject " + string(template),
		Amount:         decimal.NewNullDecimal(decimal.NewFromInt(250)),
		Status:         domain.NotificationStatusPending,
		RecipientEmail: email,
		RecipientName:  "alice",
	}
}

// TestProcess_NoNotifications нет уведомлений для отправки.
func (s *ProcessorTestSuite) TestProcess_NoNotifications() {
	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), s.processor.limitPerIteration).
		Return(nil, nil)

	err := s.processor.process(s.T().Context())
	s.ErrorIs(err, ErrNoNotifications)
}

// TestProcess_ReportsEveryResult успешные и неудачные отправки передаются в сервис одним отчетом.
func (s *ProcessorTestSuite) TestProcess_ReportsEveryResult() {
	ok := notification(domain.TemplateDeposit, "ok@example.com")
	broken := notification(domain.TemplateWithdraw, "broken@example.com")
	smtpErr := errors.New("421 service not available")

	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), s.processor.limitPerIteration).
		Return([]domain.Notification{ok, broken}, nil)

	s.mockMailer.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg domain.MailMessage) error {
			if msg.To == broken.RecipientEmail {
				return smtpErr
			}
			s.Equal(ok.Subject, msg.Subject)
			s.Contains(msg.HTMLBody, "250.00")
			return nil
		}).Times(2)

	s.mockService.EXPECT().
		ReportDelivery(gomock.Any(), gomock.Any(), uint(3)).
		Do(func(_ context.Context, results []service.DeliveryResult, _ uint) {
			s.Require().Len(results, 2)
			for _, r := range results {
				switch r.NotificationID {
				case ok.ID:
					s.NoError(r.Error)
				case broken.ID:
					s.ErrorIs(r.Error, smtpErr)
				default:
					s.Failf("unexpected result", "notification %s", r.NotificationID)
				}
			}
		}).
		Return(nil)

	ctx, cancel := context.WithTimeout(s.T().Context(), time.Second)
	defer cancel()
	s.NoError(s.processor.process(ctx))
}

// TestProcess_UnknownTemplate уведомление с неизвестным шаблоном не отправляется и считается неудачей.
func (s *ProcessorTestSuite) TestProcess_UnknownTemplate() {
	bad := notification("unknown", "x@example.com")

	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), gomock.Any()).
		Return([]domain.Notification{bad}, nil)
	s.mockMailer.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)
	s.mockService.EXPECT().
		ReportDelivery(gomock.Any(), gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, results []service.DeliveryResult, _ uint) {
			s.Require().Len(results, 1)
			s.ErrorIs(results[0].Error, ErrUnknownTemplate)
		}).
		Return(nil)

	s.ErrorIs(s.processor.process(s.T().Context()), ErrAllDeliveriesFailed)
}

// TestRun_PausesWhenMailerIsDown при недоступном почтовом сервере цикл не выбирает уведомления повторно
// без паузы, иначе попытки исчерпываются за одну секунду простоя.
func (s *ProcessorTestSuite) TestRun_PausesWhenMailerIsDown() {
	pending := notification(domain.TemplateDeposit, "alice@example.com")
	var polls atomic.Int32

	s.processor.idlePause = time.Hour
	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, uint) ([]domain.Notification, error) {
			polls.Add(1)
			return []domain.Notification{pending}, nil
		}).AnyTimes()
	s.mockMailer.EXPECT().
		Send(gomock.Any(), gomock.Any()).
		Return(errors.New("dial tcp: connection refused")).AnyTimes()
	s.mockService.EXPECT().
		ReportDelivery(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).AnyTimes()

	ctx, cancel := context.WithTimeout(s.T().Context(), 200*time.Millisecond)
	defer cancel()
	s.processor.Run(ctx)

	s.Equal(int32(1), polls.Load())
}

// TestRun_StopsOnCancel цикл завершается после отмены контекста.
func (s *ProcessorTestSuite) TestRun_StopsOnCancel() {
	s.mockService.EXPECT().
		PendingNotifications(gomock.Any(), gomock.Any()).
		Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(s.T().Context())
	done := make(chan struct{})
	go func() {
		s.processor.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		s.Fail("processor did not stop")
	}
}
