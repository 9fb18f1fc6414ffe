package tasks

import (
	"encoding/json"

	"eventra/models"

	"github.com/hibiken/asynq"
)

const TypeEmailDeliver = "email:deliver"

// NewEmailDeliveryTask builds the asynq task for one outbound email.
func NewEmailDeliveryTask(payload models.EmailDeliveryPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEmailDeliver, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}
