package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с предгенерированными слотами расписания
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// BulkCreate вставляет пачку слотов, пропуская уже существующие.
// Возвращает количество реально созданных строк.
func (r *Repository) BulkCreate(ctx context.Context, slots []*domain.Schedule) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("schedules").
		Columns("service_id", "slot_date", "start_time", "end_time", "is_available")

	for _, slot := range slots {
		builder = builder.Values(slot.ServiceID, slot.Date, slot.StartTime, slot.EndTime, slot.IsAvailable)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (service_id, slot_date, start_time) DO NOTHING").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: BulkCreate - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: BulkCreate - execute query: %v", ErrExecQuery, err)
	}

	created, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: BulkCreate - get rows affected: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает слот расписания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	slot, err := scanSchedule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScheduleNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan row: %v", ErrScanRow, err)
	}

	return slot, nil
}

var scheduleColumns = []string{
	"id", "service_id", "slot_date", "start_time", "end_time", "is_available", "created_at",
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var slot domain.Schedule
	var createdAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.ServiceID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsAvailable,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	return &slot, nil
}
