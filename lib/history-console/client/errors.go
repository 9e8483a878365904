package historyclient

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	ErrorKindTransport ErrorKind = "transport" // сеть/транспорт
	ErrorKindServer    ErrorKind = "server"    // ответ не 2xx
	ErrorKindShape     ErrorKind = "shape"     // ответ не того формата
	ErrorKindInvalid   ErrorKind = "invalid"   // запрос не отправлен: некорректные данные
)

const (
	transportErrorMessage = "не удалось выполнить запрос к серверу"
	shapeErrorMessage     = "некорректный формат ответа сервера"
)

// Error ошибка обращения к бэкенду. Message показывается пользователю как есть.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newTransportError(cause error) *Error {
	return &Error{
		Kind:    ErrorKindTransport,
		Message: transportErrorMessage,
		cause:   cause,
	}
}

func newShapeError(cause error) *Error {
	return &Error{
		Kind:    ErrorKindShape,
		Message: shapeErrorMessage,
		cause:   cause,
	}
}

func newServerError(status int, message string) *Error {
	if message == "" {
		message = fmt.Sprintf("ошибка сервера (код %d)", status)
	}
	return &Error{
		Kind:    ErrorKindServer,
		Status:  status,
		Message: message,
	}
}

// NewInvalidError ошибка данных, обнаруженная до отправки запроса
func NewInvalidError(cause error) *Error {
	return &Error{
		Kind:    ErrorKindInvalid,
		Message: cause.Error(),
		cause:   cause,
	}
}

// AsError приводит любую ошибку к *Error, чтобы наружу уходил один вид ошибки
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var clientErr *Error
	if errors.As(err, &clientErr) {
		return clientErr
	}
	return newTransportError(err)
}
