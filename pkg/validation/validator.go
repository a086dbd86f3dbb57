package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"

	apperrors "admin-request-engine/pkg/errors"
)

// CustomValidator - обертка для использования в Echo и в сервисах.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate реализует интерфейс echo.Validator.
// Ошибки правил приводятся к *apperrors.ValidationError.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]apperrors.FieldError, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, apperrors.FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		return apperrors.NewValidationError(fields...)
	}
	return err
}

// New создает и настраивает валидатор
func New() *CustomValidator {
	v := validator.New()

	// 1. Подключаем поддержку null-типов (из файла types_adapter.go)
	registerNullTypes(v)

	// 2. Регистрируем кастомные правила (из файла rules.go)
	// Если правило не зарегистрировалось, паникуем, сервер не должен стартовать
	if err := registerRules(v); err != nil {
		panic("ошибка регистрации валидаторов: " + err.Error())
	}

	return &CustomValidator{validator: v}
}
