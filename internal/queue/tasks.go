package queue

import (
	"encoding/json"

	"github.com/bookshop-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderAutoComplete 超期订单自动完成任务
	TaskOrderAutoComplete = constants.TaskOrderAutoComplete
)

// OrderAutoCompletePayload 自动完成任务载荷
type OrderAutoCompletePayload struct {
	OlderThanDays int `json:"older_than_days"`
}

// NewOrderAutoCompleteTask 创建自动完成任务
func NewOrderAutoCompleteTask(payload OrderAutoCompletePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderAutoComplete, body), nil
}
