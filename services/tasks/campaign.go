// Package tasks builds the queue tasks dispatched through asynq.
package tasks

import (
	"encoding/json"
	"time"

	"bossmaids/models"

	"github.com/hibiken/asynq"
)

const TypeCampaignDispatch = "campaign:dispatch"

// NewCampaignDispatchTask builds the task that sends a scheduled campaign
// when its scheduled date arrives.
func NewCampaignDispatchTask(payload models.CampaignDispatchPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeCampaignDispatch, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
