package validation

import (
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"admin-request-engine/pkg/constants"
)

// Границы бюджета совпадают с колонкой NUMERIC(14, 2).
const (
	BudgetMaxScale         = 2
	BudgetMaxIntegerDigits = 12
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("request_type", isRequestType); err != nil {
		return err
	}
	if err := v.RegisterValidation("request_priority", isRequestPriority); err != nil {
		return err
	}
	if err := v.RegisterValidation("request_status", isRequestStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("budget", isBudget); err != nil {
		return err
	}
	if err := v.RegisterValidation("plain_text", isPlainText); err != nil {
		return err
	}
	return nil
}

func isRequestType(fl validator.FieldLevel) bool {
	return constants.IsValidRequestType(constants.RequestType(fl.Field().String()))
}

func isRequestPriority(fl validator.FieldLevel) bool {
	return constants.IsValidPriority(constants.RequestPriority(fl.Field().String()))
}

func isRequestStatus(fl validator.FieldLevel) bool {
	return constants.IsValidStatus(constants.RequestStatus(fl.Field().String()))
}

// isBudget: неотрицательное число, не больше двух знаков после запятой
// и не больше 12 знаков в целой части. Считаем по коэффициенту и экспоненте,
// без приведения к float64 и без раскрытия огромных экспонент.
func isBudget(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	if d.IsNegative() {
		return false
	}
	if d.IsZero() {
		return true
	}

	coef := d.Coefficient()
	exp := int64(d.Exponent())
	ten := big.NewInt(10)
	quo, rem := new(big.Int), new(big.Int)
	for {
		quo.QuoRem(coef, ten, rem)
		if rem.Sign() != 0 {
			break
		}
		coef.Set(quo)
		exp++
	}

	if exp < -BudgetMaxScale {
		return false
	}
	digits := int64(len(coef.String()))
	return digits+exp <= BudgetMaxIntegerDigits
}

// isPlainText отсекает строки, которые не сохранит TEXT в PostgreSQL:
// невалидный UTF-8 и NUL.
func isPlainText(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}
