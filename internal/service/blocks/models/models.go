package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// BlockIntervalRequest запрос на блокировку интервала
type BlockIntervalRequest struct {
	Date      string  `json:"date"` // "2025-10-15"
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Reason    *string `json:"reason,omitempty"`
}

// UnblockIntervalRequest запрос на снятие блокировки
type UnblockIntervalRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// Response модели

// BlockedIntervalResponse ответ с блокировкой
type BlockedIntervalResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Reason    *string `json:"reason,omitempty"`
}

// BlockedIntervalListResponse ответ со списком блокировок
type BlockedIntervalListResponse struct {
	BlockedIntervals []BlockedIntervalResponse `json:"blockedIntervals"`
}

// Методы конвертации

// FromDomainBlockedInterval конвертирует domain модель в DTO
func FromDomainBlockedInterval(i *domain.BlockedInterval) *BlockedIntervalResponse {
	if i == nil {
		return nil
	}

	return &BlockedIntervalResponse{
		ID:        i.ID,
		Date:      i.Date.Format(domain.DateFormat),
		StartTime: i.StartTime.String(),
		EndTime:   i.EndTime.String(),
		Reason:    i.Reason,
	}
}

// FromDomainBlockedIntervalList конвертирует список domain моделей в DTO
func FromDomainBlockedIntervalList(intervals []*domain.BlockedInterval) *BlockedIntervalListResponse {
	resp := &BlockedIntervalListResponse{
		BlockedIntervals: make([]BlockedIntervalResponse, 0, len(intervals)),
	}

	for _, interval := range intervals {
		if intervalResp := FromDomainBlockedInterval(interval); intervalResp != nil {
			resp.BlockedIntervals = append(resp.BlockedIntervals, *intervalResp)
		}
	}

	return resp
}
