package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/groph-bank/internal/config"
	"github.com/fsdevblog/groph-bank/internal/notifier"
	"github.com/fsdevblog/groph-bank/internal/repository/pgrepo"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/internal/service"
	"github.com/fsdevblog/groph-bank/internal/service/psswd"
	"github.com/fsdevblog/groph-bank/internal/transport/api"
	"github.com/fsdevblog/groph-bank/pkg/uow"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
)

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

// Run поднимает http сервер и рассыльщик уведомлений и ждет сигнала остановки. После сигнала сервер
// дообрабатывает текущие запросы, а рассыльщик завершает итерацию.
func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.Infof("Starting app with config: %s", a.Config)
	conn, connErr := pgrepo.Connect(notifyCtx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return fmt.Errorf("app run: %w", connErr)
	}
	defer conn.Close()

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		return fmt.Errorf("app run: %w", uowErr)
	}

	jwtSecret := []byte(a.Config.JWTUserSecret)
	services, sErr := service.Factory(unitOfWork, service.FactoryArgs{
		JWTSecret:   jwtSecret,
		Hasher:      psswd.NewBcryptHasher(bcrypt.DefaultCost),
		Admins:      a.Config.AdminUsers,
		ReportScope: service.ReportBalanceScope(a.Config.ReportBalanceScope),
	})
	if sErr != nil {
		return fmt.Errorf("app run: %w", sErr)
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:             a.Logger,
		UserService:        services.UserService,
		TransactionService: services.TransactionService,
		LoanService:        services.LoanService,
		ReportService:      services.ReportService,
		JWTSecretKey:       jwtSecret,
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %w", routerErr)
	}

	services.NotificationService.SetRetryBackoff(a.Config.Notify.RetryBase, a.Config.Notify.RetryMax)
	processor, procErr := a.newNotifier(services.NotificationService)
	if procErr != nil {
		return fmt.Errorf("app run: %w", procErr)
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gCtx := errgroup.WithContext(notifyCtx)
	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		processor.Run(gCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck
	}
	return notifyCtx.Err() //nolint:wrapcheck
}

// newNotifier собирает процессор уведомлений. Без SMTP_HOST письма только пишутся в лог.
func (a *App) newNotifier(svs notifier.Servicer) (*notifier.Processor, error) {
	renderer, renderErr := notifier.NewRenderer()
	if renderErr != nil {
		return nil, fmt.Errorf("new notifier: %w", renderErr)
	}

	var mailer notifier.Mailer
	if a.Config.SMTP.Host == "" {
		a.Logger.Warn("SMTP_HOST is not set, notifications will be logged instead of sent")
		mailer = notifier.NewLogMailer(a.Logger)
	} else {
		smtpMailer, mailerErr := notifier.NewSMTPMailer(notifier.SMTPConfig{
			Host:     a.Config.SMTP.Host,
			Port:     a.Config.SMTP.Port,
			Username: a.Config.SMTP.Username,
			Password: a.Config.SMTP.Password,
			From:     a.Config.SMTP.From,
			TLS:      a.Config.SMTP.TLS,
		})
		if mailerErr != nil {
			return nil, fmt.Errorf("new notifier: %w", mailerErr)
		}
		mailer = smtpMailer
	}

	return notifier.NewProcessor(svs, mailer, renderer, a.Logger).
		SetWorkers(a.Config.Notify.Workers).
		SetLimitPerIteration(a.Config.Notify.BatchSize).
		SetMaxAttempts(a.Config.Notify.MaxAttempts), nil
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.AccountRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewAccountRepository(dbtx)
		},
		repoargs.AddressRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewAddressRepository(dbtx)
		},
		repoargs.TransactionRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewTransactionRepository(dbtx)
		},
		repoargs.NotificationRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewNotificationRepository(dbtx)
		},
	}
	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %w", regErr)
		}
	}
	return unitOfWork, nil
}
