package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/fsdevblog/groph-bank/internal/repository/repoargs"
	"github.com/fsdevblog/groph-bank/internal/service"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionsHandlerTestSuite struct {
	handlerSuite
}

func TestTransactionsHandlerSuite(t *testing.T) {
	suite.Run(t, new(TransactionsHandlerTestSuite))
}

func (s *TransactionsHandlerTestSuite) TestAccount() {
	s.mockTrService.EXPECT().GetAccount(gomock.Any(), s.currentUserID).Return(&domain.Account{
		ID:          4,
		UserID:      s.currentUserID,
		AccountNo:   "1000000001",
		AccountType: domain.AccountTypeSavings,
		OpenedDate:  time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Balance:     decimal.RequireFromString("700.5"),
	}, nil)

	res, body := s.request(http.MethodGet, AccountRoute, nil, s.userToken)
	s.Require().Equal(http.StatusOK, res.StatusCode)

	var resp map[string]any
	s.Require().NoError(json.Unmarshal(body, &resp))
	s.Equal("700.5", resp["balance"])
	s.Equal("1000000001", resp["account_no"])
	s.Equal("2024-02-01", resp["opened_date"])
}

func (s *TransactionsHandlerTestSuite) TestDeposit() {
	amount := decimal.RequireFromString("150")
	s.mockTrService.EXPECT().
		Deposit(gomock.Any(), s.currentUserID, amount).
		Return(&domain.Transaction{ID: 1, Amount: amount, Type: domain.TransactionDeposit, BalanceAfter: amount}, nil)
	s.mockTrService.EXPECT().
		Deposit(gomock.Any(), s.currentUserID, decimal.RequireFromString("50")).
		Return(nil, domain.NewRejectionError(domain.ErrAmountBelowMinimum, "Deposit amount must be at least 100"))
	s.mockTrService.EXPECT().
		Deposit(gomock.Any(), s.currentUserID, decimal.RequireFromString("9999999999")).
		Return(nil, fmt.Errorf("depositing: %w", domain.ErrValueOutOfRange))

	cases := []struct {
		name       string
		payload    any
		jwtToken   string
		wantStatus int
		wantError  string
	}{
		{name: "all ok", payload: `{"amount":"150"}`, jwtToken: s.userToken, wantStatus: http.StatusCreated},
		{
			name:       "below minimum",
			payload:    `{"amount":"50"}`,
			jwtToken:   s.userToken,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "Deposit amount must be at least 100",
		},
		{
			name:       "column overflow",
			payload:    `{"amount":"9999999999"}`,
			jwtToken:   s.userToken,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "value out of range",
		},
		{name: "three decimals", payload: `{"amount":"150.123"}`, jwtToken: s.userToken,
			wantStatus: http.StatusUnprocessableEntity},
		{name: "too many digits", payload: `{"amount":"12345678901"}`, jwtToken: s.userToken,
			wantStatus: http.StatusUnprocessableEntity},
		{name: "missing amount", payload: `{}`, jwtToken: s.userToken,
			wantStatus: http.StatusUnprocessableEntity},
		{name: "zero amount", payload: `{"amount":"0"}`, jwtToken: s.userToken,
			wantStatus: http.StatusUnprocessableEntity},
		{name: "bad json", payload: `{"amount":`, jwtToken: s.userToken, wantStatus: http.StatusBadRequest},
		{name: "not authorized", payload: `{"amount":"150"}`, wantStatus: http.StatusUnauthorized},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, body := s.request(http.MethodPost, DepositRoute, t.payload, t.jwtToken)
			s.Equal(t.wantStatus, res.StatusCode)
			if t.wantError != "" {
				s.Equal(t.wantError, s.errorMessage(body))
			}
		})
	}
}

// Сумма не указана: запрос отклоняется валидацией, сервис не вызывается.
func (s *TransactionsHandlerTestSuite) TestMoneyOperationsRequireAmount() {
	for _, route := range []string{DepositRoute, WithdrawRoute} {
		s.Run(route, func() {
			res, body := s.request(http.MethodPost, route, `{}`, s.userToken)
			s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
			var resp struct {
				Fields map[string]string `json:"fields"`
			}
			s.Require().NoError(json.Unmarshal(body, &resp))
			s.Equal(map[string]string{"Amount": "required"}, resp.Fields)
		})
	}
}

func (s *TransactionsHandlerTestSuite) TestWithdraw() {
	s.mockTrService.EXPECT().
		Withdraw(gomock.Any(), s.currentUserID, decimal.RequireFromString("600")).
		Return(nil, domain.NewRejectionError(domain.ErrBankInsolvent, "Bank does not have enough money"))
	s.mockTrService.EXPECT().
		Withdraw(gomock.Any(), s.currentUserID, decimal.RequireFromString("700")).
		Return(nil, fmt.Errorf("withdrawing: %w", domain.ErrUnknown))

	res, body := s.request(http.MethodPost, WithdrawRoute, `{"amount":"600"}`, s.userToken)
	s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
	s.Equal("Bank does not have enough money", s.errorMessage(body))

	// причина внутренней ошибки клиенту не отдается.
	res, body = s.request(http.MethodPost, WithdrawRoute, `{"amount":"700"}`, s.userToken)
	s.Equal(http.StatusInternalServerError, res.StatusCode)
	s.Equal("internal server error", s.errorMessage(body))
}

func (s *TransactionsHandlerTestSuite) TestTransfer() {
	amount := decimal.RequireFromString("250.50")
	s.mockTrService.EXPECT().
		Transfer(gomock.Any(), s.currentUserID, "1000000002", amount).
		Return(&domain.Transaction{ID: 9, Amount: amount, Type: domain.TransactionTransfer}, nil)
	s.mockTrService.EXPECT().
		Transfer(gomock.Any(), s.currentUserID, "1000000404", amount).
		Return(nil, domain.NewRejectionError(domain.ErrReceiverNotFound, "Receiver account not found"))

	cases := []struct {
		name       string
		payload    string
		wantStatus int
	}{
		{name: "all ok", payload: `{"account_no":"1000000002","amount":"250.50"}`, wantStatus: http.StatusCreated},
		{name: "unknown receiver", payload: `{"account_no":"1000000404","amount":"250.50"}`,
			wantStatus: http.StatusUnprocessableEntity},
		{name: "short account no", payload: `{"account_no":"123","amount":"250.50"}`,
			wantStatus: http.StatusUnprocessableEntity},
		{name: "letters in account no", payload: `{"account_no":"10000000ab","amount":"250.50"}`,
			wantStatus: http.StatusUnprocessableEntity},
		{name: "no account no", payload: `{"amount":"250.50"}`, wantStatus: http.StatusUnprocessableEntity},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, _ := s.request(http.MethodPost, TransferRoute, t.payload, s.userToken)
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *TransactionsHandlerTestSuite) TestReport() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	account := &domain.Account{ID: 4, AccountNo: "1000000001", Balance: decimal.RequireFromString("700")}

	s.mockReportService.EXPECT().
		Report(gomock.Any(), s.currentUserID, &start, &end).
		Return(&service.Report{
			Account:      account,
			Transactions: []domain.Transaction{{ID: 1, Amount: decimal.RequireFromString("100")}},
			Balance:      decimal.RequireFromString("99000"),
			Range:        &repoargs.DateRange{From: start, To: end},
		}, nil)
	s.mockReportService.EXPECT().
		Report(gomock.Any(), s.currentUserID, nil, nil).
		Return(&service.Report{Account: account, Balance: account.Balance}, nil)

	s.Run("with range", func() {
		res, body := s.request(http.MethodGet, ReportRoute+"?start_date=2024-01-01&end_date=2024-01-31", nil,
			s.userToken)
		s.Require().Equal(http.StatusOK, res.StatusCode)

		var resp ReportResponse
		s.Require().NoError(json.Unmarshal(body, &resp))
		s.Len(resp.Transactions, 1)
		s.True(decimal.RequireFromString("99000").Equal(resp.Balance))
		s.Require().NotNil(resp.StartDate)
		s.Equal("2024-01-01", *resp.StartDate)
	})

	s.Run("without range", func() {
		res, body := s.request(http.MethodGet, ReportRoute, nil, s.userToken)
		s.Require().Equal(http.StatusOK, res.StatusCode)

		var resp ReportResponse
		s.Require().NoError(json.Unmarshal(body, &resp))
		s.Nil(resp.StartDate)
		s.Empty(resp.Transactions)
	})

	s.Run("invalid date", func() {
		res, _ := s.request(http.MethodGet, ReportRoute+"?start_date=01.01.2024", nil, s.userToken)
		s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
	})
}
