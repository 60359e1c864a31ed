package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceUnavailable возвращается, когда услуга неактивна
	ErrServiceUnavailable = errors.New("create_appointment: service is unavailable")

	// ErrSlotOutsideHours возвращается, когда слот не попадает в рабочее окно
	// (день закрыт, праздник, либо слот не помещается до закрытия)
	ErrSlotOutsideHours = errors.New("create_appointment: slot is outside business hours")

	// ErrSlotTaken возвращается, когда слот занят другой записью или блокировкой.
	// Отличим от ErrSlotOutsideHours: клиент видит "слот только что заняли",
	// а не "такого слота никогда не было".
	ErrSlotTaken = errors.New("create_appointment: slot is already booked")

	// ErrScheduleNotFound возвращается, когда предгенерированный слот не найден
	ErrScheduleNotFound = errors.New("create_appointment: schedule slot not found")

	// ErrScheduleUnavailable возвращается, когда предгенерированный слот
	// административно выключен или принадлежит другой услуге
	ErrScheduleUnavailable = errors.New("create_appointment: schedule slot is unavailable")

	// ErrInvalidDate возвращается при попытке записи на прошедшую дату
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrInvalidStatus возвращается при недопустимом начальном статусе
	ErrInvalidStatus = errors.New("create_appointment: invalid initial status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
