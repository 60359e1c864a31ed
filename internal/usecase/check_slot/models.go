package check_slot

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на проверку доступности слота
type Request struct {
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата слота
	StartTime types.TimeString // Время начала слота
}

// Response модель ответа с доступностью слота
type Response struct {
	ServiceID int64            // ID услуги
	Date      time.Time        // Дата слота
	StartTime types.TimeString // Время начала слота
	Available bool             // Доступен ли слот для записи
}
