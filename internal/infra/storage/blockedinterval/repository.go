package blockedinterval

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Repository репозиторий для работы с административными блокировками времени
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает блокировку интервала
func (r *Repository) Create(ctx context.Context, interval *domain.BlockedInterval) (*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_intervals").
		Columns("block_date", "start_time", "end_time", "reason").
		Values(interval.Date, interval.StartTime, interval.EndTime, interval.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&interval.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute query: %v", ErrExecQuery, err)
	}

	interval.CreatedAt = createdAt.Time
	return interval, nil
}

// GetByDate получает все блокировки на дату, отсортированные по началу
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.BlockedInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "block_date", "start_time", "end_time", "reason", "created_at",
	).
		From("blocked_intervals").
		Where(squirrel.Eq{"block_date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]*domain.BlockedInterval, 0)
	for rows.Next() {
		var interval domain.BlockedInterval
		var createdAt sql.NullTime

		err := rows.Scan(
			&interval.ID,
			&interval.Date,
			&interval.StartTime,
			&interval.EndTime,
			&interval.Reason,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan row: %v", ErrScanRow, err)
		}

		interval.CreatedAt = createdAt.Time
		intervals = append(intervals, &interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// DeleteByDateAndStart удаляет блокировку по дате и времени начала
func (r *Repository) DeleteByDateAndStart(ctx context.Context, date time.Time, startTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_intervals").
		Where(squirrel.Eq{"block_date": date}).
		Where(squirrel.Eq{"start_time": startTime}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByDateAndStart - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByDateAndStart - execute query: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByDateAndStart - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrIntervalNotFound
	}

	return nil
}
