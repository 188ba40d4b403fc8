package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// TaskBookingRefreshStatus rewrites stored booking statuses that went stale overnight.
	TaskBookingRefreshStatus = "booking:refresh_status"
)

type RefreshStatusPayload struct {
	Trigger string `json:"trigger"`
}

const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)

func NewRefreshStatusTask(trigger string) (*asynq.Task, error) {
	data, err := json.Marshal(RefreshStatusPayload{Trigger: trigger})
	if err != nil {
		return nil, fmt.Errorf("failed to encode refresh status payload: %w", err)
	}

	return asynq.NewTask(TaskBookingRefreshStatus, data), nil
}
