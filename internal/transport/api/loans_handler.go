package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const pendingLoansLimit uint = 100

type LoansHandler struct {
	svs LoanServicer
}

func NewLoansHandler(svs LoanServicer) *LoansHandler {
	return &LoansHandler{
		svs: svs,
	}
}

// Create POST RouteGroup + LoansRoute. Заявка на кредит, баланс меняется только после одобрения.
func (h *LoansHandler) Create(c *gin.Context) {
	var params AmountParams
	if !bindJSON(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	loan, err := h.svs.RequestLoan(reqCtx, getUserIDFromContext(c), params.Amount)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTransactionResponse(loan))
}

// Index GET RouteGroup + LoansRoute.
func (h *LoansHandler) Index(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	loans, err := h.svs.ListLoans(reqCtx, getUserIDFromContext(c))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionsResponse(loans))
}

// Pay POST RouteGroup + PayLoanRoute.
func (h *LoansHandler) Pay(c *gin.Context) {
	loanID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	loan, err := h.svs.PayLoan(reqCtx, getUserIDFromContext(c), loanID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionResponse(loan))
}

// Pending GET RouteGroup + AdminLoansRoute. Неодобренные заявки всех счетов.
func (h *LoansHandler) Pending(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	loans, err := h.svs.PendingLoans(reqCtx, getActorFromContext(c), pendingLoansLimit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionsResponse(loans))
}

// Approve POST RouteGroup + ApproveLoanRoute.
func (h *LoansHandler) Approve(c *gin.Context) {
	loanID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	loan, err := h.svs.ApproveLoan(reqCtx, getActorFromContext(c), loanID)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newTransactionResponse(loan))
}
