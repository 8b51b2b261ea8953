package service

import (
	"fmt"

	"github.com/fsdevblog/groph-bank/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	MinDepositAmount  = decimal.NewFromInt(100)
	MinWithdrawAmount = decimal.NewFromInt(500)
	MaxWithdrawAmount = decimal.NewFromInt(20000)
	// MaxBalance наибольший баланс, который помещается в колонку NUMERIC(12,2).
	MaxBalance = decimal.RequireFromString("9999999999.99")
)

// MaxApprovedLoans сколько одобренных непогашенных кредитов может быть у счета одновременно.
const MaxApprovedLoans = 3

// Правила ниже не обращаются к хранилищу: все нужные значения передает вызывающий код.
// Отказ возвращается как *domain.RejectionError, nil - операция допустима.

func ValidateDeposit(amount decimal.Decimal) error {
	if amount.LessThan(MinDepositAmount) {
		return domain.NewRejectionError(domain.ErrAmountBelowMinimum,
			fmt.Sprintf("You need to deposit at least %s $", MinDepositAmount))
	}
	return nil
}

// ValidateWithdraw проверяет лимиты снятия и остаток на счете. Платежеспособность банка проверяется
// отдельно, CheckSolvency.
func ValidateWithdraw(amount, balance decimal.Decimal) error {
	switch {
	case amount.LessThan(MinWithdrawAmount):
		return domain.NewRejectionError(domain.ErrAmountBelowMinimum,
			fmt.Sprintf("You can withdraw at least %s $", MinWithdrawAmount))
	case amount.GreaterThan(MaxWithdrawAmount):
		return domain.NewRejectionError(domain.ErrAmountAboveMaximum,
			fmt.Sprintf("You can withdraw at most %s $", MaxWithdrawAmount))
	case amount.GreaterThan(balance):
		return domain.NewRejectionError(domain.ErrNotEnoughBalance, fmt.Sprintf(
			"You have %s $ in your account. You can not withdraw more than your account balance",
			balance.StringFixed(2),
		))
	}
	return nil
}

// CheckSolvency отказывает, если сумма балансов всех счетов банка меньше amount.
func CheckSolvency(amount, bankTotal decimal.Decimal) error {
	if bankTotal.LessThan(amount) {
		return domain.NewRejectionError(domain.ErrBankInsolvent,
			"The bank is bankrupt. There are insufficient funds in the system to fulfill your withdrawal.")
	}
	return nil
}

func ValidateLoan(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.NewRejectionError(domain.ErrNonPositiveAmount, "Amount must be greater than 0")
	}
	return nil
}

func CheckLoanLimit(approvedLoans int64) error {
	if approvedLoans >= MaxApprovedLoans {
		return domain.NewRejectionError(domain.ErrLoanLimitExceeded, "You have crossed the loan limit")
	}
	return nil
}

// ValidateTransfer проверяет перевод между уже найденными счетами. receiver == nil - счета получателя нет.
func ValidateTransfer(sender, receiver *domain.Account, amount decimal.Decimal) error {
	if receiver == nil {
		return domain.NewRejectionError(domain.ErrReceiverNotFound, "Receiver account does not exist")
	}
	if sender.ID == receiver.ID {
		return domain.NewRejectionError(domain.ErrSameAccount, "You can not transfer money to your own account")
	}
	if !amount.IsPositive() {
		return domain.NewRejectionError(domain.ErrNonPositiveAmount, "Amount must be greater than 0")
	}
	if amount.GreaterThan(sender.Balance) {
		return domain.NewRejectionError(domain.ErrNotEnoughBalance, "Insufficient balance in your account")
	}
	return nil
}

// ValidateLoanRepayment кредит можно погасить, только если он одобрен, еще не погашен и сумма кредита
// строго меньше баланса.
func ValidateLoanRepayment(loan *domain.Transaction, balance decimal.Decimal) error {
	if loan.Type == domain.TransactionLoanPaid {
		return domain.NewRejectionError(domain.ErrLoanAlreadyPaid, "Loan is already paid")
	}
	if !loan.LoanApprove {
		return domain.NewRejectionError(domain.ErrLoanNotApproved, "Loan is not approved yet")
	}
	if !loan.Amount.LessThan(balance) {
		return domain.NewRejectionError(domain.ErrNotEnoughBalance, "Loan amount is greater than available balance")
	}
	return nil
}

// CheckBalanceLimit отказывает, если после зачисления баланс счета превысит MaxBalance.
func CheckBalanceLimit(newBalance decimal.Decimal) error {
	if newBalance.GreaterThan(MaxBalance) {
		return domain.NewRejectionError(domain.ErrBalanceLimitExceeded,
			fmt.Sprintf("Account balance can not exceed %s $", MaxBalance.StringFixed(2)))
	}
	return nil
}
