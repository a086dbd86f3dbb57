package validation

import (
	"reflect"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// registerNullTypes учит валидатор "смотреть внутрь" null.Time и decimal.NullDecimal.
func registerNullTypes(v *validator.Validate) {
	// Для null.Time
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(null.Time); ok {
			if val.Valid {
				return val.Time
			}
		}
		return nil // Возвращаем nil, чтобы сработал `omitempty`
	}, null.Time{})

	// Для decimal.NullDecimal отдаем сам decimal.Decimal: правила вроде budget
	// сравнивают точное значение, а не float64
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(decimal.NullDecimal); ok {
			if val.Valid {
				return val.Decimal
			}
		}
		return nil
	}, decimal.NullDecimal{})
}
