package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// BusinessHours represents the operating window for one weekday.
// One entry per weekday (0 = Sunday ... 6 = Saturday), upserted by weekday key.
// A missing or inactive entry means the business is closed that day.
type BusinessHours struct {
	ID        int64
	Weekday   int // 0-6
	OpenTime  types.TimeString
	CloseTime types.TimeString
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Holiday represents a date with zero bookable slots regardless of business hours.
// Recurring holidays match by month/day across years.
type Holiday struct {
	ID          int64
	Date        time.Time
	Name        string
	Description *string
	IsRecurring bool
	CreatedAt   time.Time
}

// BlockedInterval represents capacity manually withheld by an administrator
// (maintenance, personal time), independent of appointments.
type BlockedInterval struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// OperatingWindow результат разрешения календаря на дату
type OperatingWindow struct {
	IsOpen    bool
	OpenTime  types.TimeString // заполнено только при IsOpen
	CloseTime types.TimeString
}

// Closed окно закрытого дня
func Closed() OperatingWindow {
	return OperatingWindow{IsOpen: false}
}

// Contains reports whether [start, start+durationMinutes) lies within the window
func (w OperatingWindow) Contains(start types.TimeString, durationMinutes int) (bool, error) {
	if !w.IsOpen {
		return false, nil
	}
	if start.IsBefore(w.OpenTime) {
		return false, nil
	}
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		// Слот выходит за пределы суток - в окно он точно не помещается
		return false, nil
	}
	return !end.IsAfter(w.CloseTime), nil
}
