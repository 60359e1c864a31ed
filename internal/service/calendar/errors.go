package calendar

import "errors"

var (
	// ErrHolidayNotFound возвращается, когда праздничный день не найден
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrDuplicateHoliday возвращается при попытке создать дубликат праздника
	ErrDuplicateHoliday = errors.New("holiday already exists for this date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
