package service

import (
	"fmt"

	"github.com/fsdevblog/groph-bank/pkg/uow"
)

type AppServices struct {
	UserService         *UserService
	TransactionService  *TransactionService
	LoanService         *LoanService
	ReportService       *ReportService
	NotificationService *NotificationService
}

type FactoryArgs struct {
	JWTSecret   []byte
	Hasher      PasswordHasher
	Admins      []string
	ReportScope ReportBalanceScope
}

func Factory(unitOfWork uow.UOW, args FactoryArgs) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, args.Hasher, args.JWTSecret, args.Admins)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %w", userServiceErr)
	}

	transactionService, trServiceErr := NewTransactionService(unitOfWork)
	if trServiceErr != nil {
		return nil, fmt.Errorf("service factory: %w", trServiceErr)
	}

	loanService, loanServiceErr := NewLoanService(unitOfWork)
	if loanServiceErr != nil {
		return nil, fmt.Errorf("service factory: %w", loanServiceErr)
	}

	reportService, reportServiceErr := NewReportService(unitOfWork, args.ReportScope)
	if reportServiceErr != nil {
		return nil, fmt.Errorf("service factory: %w", reportServiceErr)
	}

	notificationService, ntServiceErr := NewNotificationService(unitOfWork)
	if ntServiceErr != nil {
		return nil, fmt.Errorf("service factory: %w", ntServiceErr)
	}

	return &AppServices{
		UserService:         userService,
		TransactionService:  transactionService,
		LoanService:         loanService,
		ReportService:       reportService,
		NotificationService: notificationService,
	}, nil
}
