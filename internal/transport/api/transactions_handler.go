package api

import (
	"context"
	"net/http"
	"time"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

type TransactionsHandler struct {
	svs       TransactionServicer
	reportSvs ReportServicer
}

func NewTransactionsHandler(svs TransactionServicer, reportSvs ReportServicer) *TransactionsHandler {
	return &TransactionsHandler{
		svs:       svs,
		reportSvs: reportSvs,
	}
}

type AccountResponse struct {
	ID          int64              `json:"id"`
	AccountNo   string             `json:"account_no"`
	AccountType domain.AccountType `json:"account_type"`
	Gender      domain.GenderType  `json:"gender"`
	BirthDate   *string            `json:"birth_date,omitempty"`
	OpenedDate  string             `json:"opened_date"`
	Balance     decimal.Decimal    `json:"balance"`
}

func newAccountResponse(a *domain.Account) AccountResponse {
	resp := AccountResponse{
		ID:          a.ID,
		AccountNo:   a.AccountNo,
		AccountType: a.AccountType,
		Gender:      a.Gender,
		OpenedDate:  a.OpenedDate.Format(dateLayout),
		Balance:     a.Balance,
	}
	if a.BirthDate != nil {
		d := a.BirthDate.Format(dateLayout)
		resp.BirthDate = &d
	}
	return resp
}

type TransactionResponse struct {
	ID           int64                  `json:"id"`
	Amount       decimal.Decimal        `json:"amount"`
	Type         domain.TransactionType `json:"transaction_type"`
	BalanceAfter decimal.Decimal        `json:"balance_after_transaction"`
	LoanApprove  bool                   `json:"loan_approve"`
	CreatedAt    string                 `json:"timestamp"`
}

func newTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Amount:       t.Amount,
		Type:         t.Type,
		BalanceAfter: t.BalanceAfter,
		LoanApprove:  t.LoanApprove,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}

func newTransactionsResponse(transactions []domain.Transaction) []TransactionResponse {
	response := make([]TransactionResponse, len(transactions))
	for i := range transactions {
		response[i] = newTransactionResponse(&transactions[i])
	}
	return response
}

// Account GET RouteGroup + AccountRoute. Текущее состояние счета юзера.
func (h *TransactionsHandler) Account(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	account, err := h.svs.GetAccount(reqCtx, getUserIDFromContext(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newAccountResponse(account))
}

type AmountParams struct {
	Amount decimal.Decimal `binding:"required,money" json:"amount"`
}

// Deposit POST RouteGroup + DepositRoute.
func (h *TransactionsHandler) Deposit(c *gin.Context) {
	h.moneyOperation(c, h.svs.Deposit)
}

// Withdraw POST RouteGroup + WithdrawRoute.
func (h *TransactionsHandler) Withdraw(c *gin.Context) {
	h.moneyOperation(c, h.svs.Withdraw)
}

type moneyOperationFunc func(ctx context.Context, userID int64, amount decimal.Decimal) (*domain.Transaction, error)

// moneyOperation общий обработчик операций, которые принимают только сумму.
func (h *TransactionsHandler) moneyOperation(c *gin.Context, op moneyOperationFunc) {
	var params AmountParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transaction, err := op(reqCtx, getUserIDFromContext(c), params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTransactionResponse(transaction))
}

type TransferParams struct {
	AccountNo string          `binding:"required,account_no" json:"account_no"`
	Amount    decimal.Decimal `binding:"required,money"      json:"amount"`
}

// Transfer POST RouteGroup + TransferRoute. Перевод на счет с номером AccountNo.
func (h *TransactionsHandler) Transfer(c *gin.Context) {
	var params TransferParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transaction, err := h.svs.Transfer(reqCtx, getUserIDFromContext(c), params.AccountNo, params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTransactionResponse(transaction))
}

type ReportParams struct {
	StartDate string `binding:"omitempty,datetime=2006-01-02"                   form:"start_date"`
	EndDate   string `binding:"omitempty,datetime=2006-01-02"                   form:"end_date"`
}

type ReportResponse struct {
	Account      AccountResponse       `json:"account"`
	Transactions []TransactionResponse `json:"transactions"`
	Balance      decimal.Decimal       `json:"balance"`
	StartDate    *string               `json:"start_date,omitempty"`
	EndDate      *string               `json:"end_date,omitempty"`
}

// Report GET RouteGroup + ReportRoute. Журнал счета, при заданных start_date и end_date - за период.
func (h *TransactionsHandler) Report(c *gin.Context) {
	var params ReportParams
	if !bindWith(c, &params, binding.Query) {
		return
	}

	var start, end *time.Time
	if params.StartDate != "" {
		d, _ := time.Parse(dateLayout, params.StartDate)
		start = &d
	}
	if params.EndDate != "" {
		d, _ := time.Parse(dateLayout, params.EndDate)
		end = &d
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	report, err := h.reportSvs.Report(reqCtx, getUserIDFromContext(c), start, end)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	resp := ReportResponse{
		Account:      newAccountResponse(report.Account),
		Transactions: newTransactionsResponse(report.Transactions),
		Balance:      report.Balance,
	}
	if report.Range != nil {
		from, to := report.Range.From.Format(dateLayout), report.Range.To.Format(dateLayout)
		resp.StartDate, resp.EndDate = &from, &to
	}
	c.JSON(http.StatusOK, resp)
}
