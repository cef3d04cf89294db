package errors

import (
	"errors"
	"fmt"
)

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, попытка ответить вне экрана викторины).
	ErrConflict = errors.New("resource state conflict")

	// ErrSessionFinished используется, когда игровая сессия уже показывает результаты
	// и больше не принимает ответы.
	ErrSessionFinished = errors.New("game session is finished")
)

// UpstreamKind классифицирует отказ внешнего API вопросов.
type UpstreamKind string

const (
	// KindTransport - сетевая ошибка или ошибка разбора ответа до того,
	// как удалось прочитать статус.
	KindTransport UpstreamKind = "transport_failure"

	// KindRejected - внешний API вернул ненулевой response_code
	// (например, недостаточно вопросов под выбранные фильтры).
	KindRejected UpstreamKind = "upstream_rejected"

	// KindMalformed - статус успешный, но тело без результатов.
	// Трактуется как отказ, а не как пустая викторина.
	KindMalformed UpstreamKind = "malformed_payload"
)

// UpstreamError - типизированный отказ шлюза вопросов.
// Code заполняется только для KindRejected.
type UpstreamError struct {
	Kind UpstreamKind
	Code int
	Err  error
}

// Error реализует интерфейс error
func (e *UpstreamError) Error() string {
	switch e.Kind {
	case KindRejected:
		return fmt.Sprintf("upstream rejected request with code %d", e.Code)
	case KindMalformed:
		return "upstream returned success without results"
	default:
		if e.Err != nil {
			return fmt.Sprintf("upstream transport failure: %v", e.Err)
		}
		return "upstream transport failure"
	}
}

// Unwrap возвращает исходную ошибку транспорта (если есть)
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewTransportError оборачивает сетевую ошибку или ошибку разбора JSON
func NewTransportError(err error) *UpstreamError {
	return &UpstreamError{Kind: KindTransport, Err: err}
}

// NewRejectedError создает ошибку для ненулевого response_code
func NewRejectedError(code int) *UpstreamError {
	return &UpstreamError{Kind: KindRejected, Code: code}
}

// NewMalformedError создает ошибку для успешного статуса без результатов
func NewMalformedError() *UpstreamError {
	return &UpstreamError{Kind: KindMalformed}
}
