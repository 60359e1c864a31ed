package types

import "errors"

var (
	// ErrInvalidTimeFormat возвращается, когда строка времени не соответствует формату "HH:MM"
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrInvalidInterval возвращается, когда начало интервала не раньше его конца
	ErrInvalidInterval = errors.New("types: invalid interval, start must be before end")

	// ErrMinutesOutOfRange возвращается, когда значение минут выходит за пределы суток [0, 1440)
	ErrMinutesOutOfRange = errors.New("types: minutes out of range")
)
