package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Жизненный цикл заявки
	ErrValidation             = fmt.Errorf("ошибка валидации")
	ErrInvalidTransition      = fmt.Errorf("недопустимый переход статуса")
	ErrConcurrentModification = fmt.Errorf("заявка была изменена параллельно, повторите запрос")

	ErrInternalServer = fmt.Errorf("внутренняя ошибка сервера")
)

// FieldError - одно нарушенное правило.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ValidationError возвращается до любой записи в хранилище.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("поле '%s' не прошло проверку '%s'", f.Field, f.Rule))
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func NewValidationError(fields ...FieldError) error {
	return &ValidationError{Fields: fields}
}

// InvalidTransitionError несет текущий и запрошенный статус.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition.Error(), e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

func NewInvalidTransitionError(from, to string) error {
	return &InvalidTransitionError{From: from, To: to}
}

// HttpError - ошибка, которую контроллер отдает клиенту как есть.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// IsValidation - сокращение для контроллеров и тестов.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
