package api

import (
	"fmt"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup       = "/api"
	RegisterRoute    = "/user/register"
	LoginRoute       = "/user/login"
	ProfileRoute     = "/user/profile"
	PasswordRoute    = "/user/password"
	AccountRoute     = "/account"
	DepositRoute     = "/transactions/deposit"
	WithdrawRoute    = "/transactions/withdraw"
	TransferRoute    = "/transactions/transfer"
	ReportRoute      = "/transactions/report"
	LoansRoute       = "/loans"
	PayLoanRoute     = "/loans/:id/pay"
	AdminLoansRoute  = "/admin/loans"
	ApproveLoanRoute = "/admin/loans/:id/approve"
)

type RouterArgs struct {
	Logger             *logrus.Logger
	UserService        UserServicer
	TransactionService TransactionServicer
	LoanService        LoanServicer
	ReportService      ReportServicer
	JWTSecretKey       []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("new router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	profileHandler := NewProfileHandler(args.UserService)
	transactionsHandler := NewTransactionsHandler(args.TransactionService, args.ReportService)
	loansHandler := NewLoansHandler(args.LoanService)

	api := r.Group(RouteGroup)

	api.POST(RegisterRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Register)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.GET(ProfileRoute, profileHandler.Show)
	api.PUT(ProfileRoute, profileHandler.Update)
	api.POST(PasswordRoute, profileHandler.ChangePassword)

	api.GET(AccountRoute, transactionsHandler.Account)
	api.POST(DepositRoute, transactionsHandler.Deposit)
	api.POST(WithdrawRoute, transactionsHandler.Withdraw)
	api.POST(TransferRoute, transactionsHandler.Transfer)
	api.GET(ReportRoute, transactionsHandler.Report)

	api.POST(LoansRoute, loansHandler.Create)
	api.GET(LoansRoute, loansHandler.Index)
	api.POST(PayLoanRoute, loansHandler.Pay)

	api.GET(AdminLoansRoute, middlewares.PermissionRequired(domain.PermViewAllLoans), loansHandler.Pending)
	api.POST(ApproveLoanRoute, middlewares.PermissionRequired(domain.PermApproveLoans), loansHandler.Approve)
	return r, nil
}
