package api

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	// moneyMaxIntDigits и moneyMaxScale соответствуют колонкам NUMERIC(12,2).
	moneyMaxIntDigits = 10
	moneyMaxScale     = 2
	accountNoLength   = 10
)

var registerOnce sync.Once

// validateMaxBytes в отличии от тэга max который проверяет длину рун, - проверят длину байт в поле.
func validateMaxBytes(fl validator.FieldLevel) bool {
	maxBytes, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return len(str) <= maxBytes
}

// validateMoney проверяет, что сумма помещается в денежную колонку: не больше двух знаков после запятой
// и moneyMaxIntDigits цифр целой части. Знак суммы проверяют бизнес-правила.
func validateMoney(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	amount, err := decimal.NewFromString(str)
	if err != nil {
		return false
	}
	if amount.Exponent() < -moneyMaxScale && !amount.Equal(amount.Round(moneyMaxScale)) {
		return false
	}
	return len(amount.Abs().Truncate(0).String()) <= moneyMaxIntDigits
}

// validateAccountNo номер счета - ровно accountNoLength цифр.
func validateAccountNo(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok || len(str) != accountNoLength {
		return false
	}
	for _, r := range str {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// decimalTypeFunc отдает валидатору decimal.Decimal как строку, чтобы к нему применялись строковые теги.
// Нулевая сумма отдается пустой строкой: отсутствующее в запросе поле не проходит тег required.
func decimalTypeFunc(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		if d.IsZero() {
			return ""
		}
		return d.String()
	}
	return nil
}

func registerValidators() error {
	var regErr error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			regErr = fmt.Errorf("validator registration: unexpected engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterCustomTypeFunc(decimalTypeFunc, decimal.Decimal{})
		validations := map[string]validator.Func{
			"max_bytes":  validateMaxBytes,
			"money":      validateMoney,
			"account_no": validateAccountNo,
		}
		for tag, fn := range validations {
			if err := v.RegisterValidation(tag, fn); err != nil {
				regErr = fmt.Errorf("validator registration: %w", err)
				return
			}
		}
	})
	return regErr
}
