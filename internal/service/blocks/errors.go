package blocks

import "errors"

var (
	// ErrIntervalNotFound возвращается, когда блокировка не найдена
	ErrIntervalNotFound = errors.New("blocked interval not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
