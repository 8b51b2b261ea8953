package service

import (
	"context"
	"testing"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LoanServiceTestSuite struct {
	repoSuite
	service *LoanService
	admin   domain.Actor
	user    domain.Actor
}

func TestLoanServiceSuite(t *testing.T) {
	suite.Run(t, new(LoanServiceTestSuite))
}

func (s *LoanServiceTestSuite) SetupTest() {
	s.repoSuite.SetupTest()
	service, err := NewLoanService(s.mockUOW)
	s.Require().NoError(err)
	s.service = service
	s.admin = domain.Actor{UserID: 100, Role: domain.RoleAdmin}
	s.user = domain.Actor{UserID: 1, Role: domain.RoleUser}
}

func (s *LoanServiceTestSuite) TestRequestLoan() {
	account := domain.Account{ID: 4, UserID: 1, Balance: dec("120")}

	s.expectTx()
	s.mockAccountRepo.EXPECT().LockByUserID(gomock.Any(), int64(1)).Return(&account, nil)
	s.mockTransactionRepo.EXPECT().CountApprovedLoans(gomock.Any(), int64(4)).Return(int64(2), nil)
	s.mockTransactionRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CreateTransaction) (*domain.Transaction, error) {
			s.Equal(domain.TransactionLoan, args.Type)
			s.False(args.LoanApprove)
			// баланс до одобрения не меняется.
			s.True(account.Balance.Equal(args.BalanceAfter))
			return &domain.Transaction{ID: 1, AccountID: 4, Amount: args.Amount, Type: args.Type}, nil
		})
	s.expectNotifications(domain.TemplateLoanRequest)

	loan, err := s.service.RequestLoan(context.Background(), 1, dec("5000"))
	s.Require().NoError(err)
	s.Equal(domain.TransactionLoan, loan.Type)
}

func (s *LoanServiceTestSuite) TestRequestLoanLimitCreatesNothing() {
	account := domain.Account{ID: 4, UserID: 1}

	s.expectTx()
	s.mockAccountRepo.EXPECT().LockByUserID(gomock.Any(), int64(1)).Return(&account, nil)
	s.mockTransactionRepo.EXPECT().CountApprovedLoans(gomock.Any(), int64(4)).Return(int64(3), nil)

	_, err := s.service.RequestLoan(context.Background(), 1, dec("5000"))
	s.ErrorIs(err, domain.ErrLoanLimitExceeded)
}

func (s *LoanServiceTestSuite) TestRequestLoanNonPositive() {
	_, err := s.service.RequestLoan(context.Background(), 1, decimal.Zero)
	s.ErrorIs(err, domain.ErrNonPositiveAmount)
}

func (s *LoanServiceTestSuite) TestApproveLoan() {
	pending := domain.Transaction{ID: 11, AccountID: 4, Amount: dec("1000"), Type: domain.TransactionLoan}
	account := domain.Account{ID: 4, UserID: 1, Balance: dec("50")}

	s.expectTx()
	gomock.InOrder(
		s.mockTransactionRepo.EXPECT().LockByID(gomock.Any(), int64(11)).Return(&pending, nil),
		s.mockAccountRepo.EXPECT().LockByID(gomock.Any(), int64(4)).Return(&account, nil),
	)
	s.mockAccountRepo.EXPECT().
		UpdateBalance(gomock.Any(), int64(4), decEq("1050")).
		Return(&domain.Account{ID: 4, UserID: 1, Balance: dec("1050")}, nil)
	s.mockTransactionRepo.EXPECT().
		UpdateLoan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.UpdateLoan) (*domain.Transaction, error) {
			s.Equal(int64(11), args.ID)
			s.True(args.LoanApprove)
			s.Equal(domain.TransactionLoan, args.Type)
			s.True(dec("1050").Equal(args.BalanceAfter))
			approved := pending
			approved.LoanApprove = true
			approved.BalanceAfter = args.BalanceAfter
			return &approved, nil
		})
	created := s.expectNotifications(domain.TemplateLoanApproval)

	loan, err := s.service.ApproveLoan(context.Background(), s.admin, 11)
	s.Require().NoError(err)
	s.True(loan.LoanApprove)
	s.Equal(int64(1), (*created)[0].UserID)
}

func (s *LoanServiceTestSuite) TestApproveLoanOverBalanceLimit() {
	pending := domain.Transaction{ID: 11, AccountID: 4, Amount: dec("1000"), Type: domain.TransactionLoan}
	account := domain.Account{ID: 4, UserID: 1, Balance: dec("9999999000")}

	s.expectTx()
	s.mockTransactionRepo.EXPECT().LockByID(gomock.Any(), int64(11)).Return(&pending, nil)
	s.mockAccountRepo.EXPECT().LockByID(gomock.Any(), int64(4)).Return(&account, nil)

	_, err := s.service.ApproveLoan(context.Background(), s.admin, 11)
	s.ErrorIs(err, domain.ErrBalanceLimitExceeded)
}

func (s *LoanServiceTestSuite) TestApproveLoanRequiresCapability() {
	_, err := s.service.ApproveLoan(context.Background(), s.user, 11)
	s.ErrorIs(err, domain.ErrForbidden)
}

func (s *LoanServiceTestSuite) TestApproveLoanTwice() {
	approved := domain.Transaction{ID: 11, AccountID: 4, Type: domain.TransactionLoan, LoanApprove: true}

	s.expectTx()
	s.mockTransactionRepo.EXPECT().LockByID(gomock.Any(), int64(11)).Return(&approved, nil)

	_, err := s.service.ApproveLoan(context.Background(), s.admin, 11)
	s.ErrorIs(err, domain.ErrLoanAlreadyApproved)
}

func (s *LoanServiceTestSuite) TestApproveNotALoan() {
	deposit := domain.Transaction{ID: 12, AccountID: 4, Type: domain.TransactionDeposit}

	s.expectTx()
	s.mockTransactionRepo.EXPECT().LockByID(gomock.Any(), int64(12)).Return(&deposit, nil)

	_, err := s.service.ApproveLoan(context.Background(), s.admin, 12)
	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *LoanServiceTestSuite) TestPayLoan() {
	account := domain.Account{ID: 4, UserID: 1, Balance: dec("1500")}
	loan := domain.Transaction{ID: 11, AccountID: 4, Amount: dec("1000"), Type: domain.TransactionLoan,
		LoanApprove: true}

	s.expectTx()
	// кредит блокируется раньше счета, как в ApproveLoan.
	gomock.InOrder(
		s.mockTransactionRepo.EXPECT().LockByID(gomock.Any(), int64(11)).Return(&loan, nil),
		s.mockAccountRepo.EXPECT().LockByUserID(gomock.Any(), int64(1)).Return(&account, nil),
	)
	s.mockAccountRepo.EXPECT().
		UpdateBalance(gomock.Any(), int64(4), decEq("500")).
		Return(&domain.Account{ID: 4, UserID: 1, Balance: dec("500")}, nil)
	s.mockTransactionRepo.EXPECT().
		UpdateLoan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.UpdateLoan) (*domain.Transaction, error) {
			s.Equal(domain.TransactionLoanPaid, args.Type)
			s.True(dec("500").Equal(args.BalanceAfter))
			paid := loan
			paid.Type = args.Type
			paid.BalanceAfter = args.BalanceAfter
			return &paid, nil
		})
	s.expectNotifications(domain.TemplateLoanPaid)

	paid, err := s.service.PayLoan(context.Background(), 1, 11)
	s.Require().NoError(err)
	s.Equal(domain.TransactionLoanPaid, paid.Type)
}

func (s *LoanServiceTestSuite) TestPayLoanRejections() {
	account := domain.Account{ID: 4, UserID: 1, Balance: dec("1000")}
	cases := []struct {
		name  string
		loan  domain.Transaction
		cause error
	}{
		{
			name:  "not approved",
			loan:  domain.Transaction{ID: 11, AccountID: 4, Amount: dec("10"), Type: domain.TransactionLoan},
			cause: domain.ErrLoanNotApproved,
		},
		{
			name: "already paid",
			loan: domain.Transaction{ID: 11, AccountID: 4, Amount: dec("10"), Type: domain.TransactionLoanPaid,
				LoanApprove: true},
			cause: domain.ErrLoanAlreadyPaid,
		},
		{
			name: "amount equals balance",
			loan: domain.Transaction{ID: 11, AccountID: 4, Amount: dec("1000"), Type: domain.TransactionLoan,
				LoanApprove: true},
			cause: domain.ErrNotEnoughBalance,
		},
		{
			name: "loan of another account",
			loan: domain.Transaction{ID: 11, AccountID: 99, Amount: dec("10"), Type: domain.TransactionLoan,
				LoanApprove: true},
			cause: domain.ErrRecordNotFound,
		},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.expectTx()
			s.mockTransactionRepo.EXPECT().LockByID(gomock.Any(), int64(11)).Return(&tc.loan, nil)
			s.mockAccountRepo.EXPECT().LockByUserID(gomock.Any(), int64(1)).Return(&account, nil)

			_, err := s.service.PayLoan(context.Background(), 1, 11)
			s.ErrorIs(err, tc.cause)
		})
	}
}

func (s *LoanServiceTestSuite) TestListLoans() {
	account := domain.Account{ID: 4, UserID: 1}
	loans := []domain.Transaction{
		{ID: 1, AccountID: 4, Type: domain.TransactionLoanPaid},
		{ID: 5, AccountID: 4, Type: domain.TransactionLoan},
	}
	s.mockAccountRepo.EXPECT().GetByUserID(gomock.Any(), int64(1)).Return(&account, nil)
	s.mockTransactionRepo.EXPECT().
		GetByAccountID(gomock.Any(), int64(4), repoargs.TransactionFilter{
			Types: []domain.TransactionType{domain.TransactionLoan, domain.TransactionLoanPaid},
		}).
		Return(loans, nil)

	got, err := s.service.ListLoans(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal(loans, got)
}

func (s *LoanServiceTestSuite) TestPendingLoans() {
	pending := []domain.Transaction{{ID: 3, Type: domain.TransactionLoan}}
	s.mockTransactionRepo.EXPECT().GetPendingLoans(gomock.Any(), uint(50)).Return(pending, nil)

	got, err := s.service.PendingLoans(context.Background(), s.admin, 50)
	s.Require().NoError(err)
	s.Equal(pending, got)

	_, err = s.service.PendingLoans(context.Background(), s.user, 50)
	s.ErrorIs(err, domain.ErrForbidden)
}
