package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается при нарушении уникальности слота на уровне БД:
	// другая не отменённая запись уже занимает тот же (service, date, start_time)
	// или тот же schedule_id
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrSerializationFailure возвращается, когда SERIALIZABLE-транзакция
	// проиграла конкурирующей (SQLSTATE 40001)
	ErrSerializationFailure = errors.New("appointment.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
