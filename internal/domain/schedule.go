package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Schedule represents a pre-generated bookable slot materialized ahead of time.
// Occupancy is defined by the existence of a non-cancelled appointment
// referencing the row, not by a flag mutation: a single source of truth.
type Schedule struct {
	ID          int64
	ServiceID   int64
	Date        time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool // административное выключение слота, не занятость
	CreatedAt   time.Time
}
