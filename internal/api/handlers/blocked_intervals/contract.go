package blocked_intervals

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/blocks/models"
)

type BlocksService interface {
	Block(ctx context.Context, req *models.BlockIntervalRequest) (*models.BlockedIntervalResponse, error)
	Unblock(ctx context.Context, req *models.UnblockIntervalRequest) error
	ListByDate(ctx context.Context, date time.Time) (*models.BlockedIntervalListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
