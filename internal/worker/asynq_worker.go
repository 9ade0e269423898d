package worker

import (
	"context"
	"encoding/json"

	"github.com/bookshop-next/internal/logger"
	"github.com/bookshop-next/internal/provider"
	"github.com/bookshop-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderAutoComplete, c.handleOrderAutoComplete)
}

func (c *Consumer) handleOrderAutoComplete(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_auto_complete_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderAutoCompletePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_auto_complete_unmarshal_failed", "error", err)
		return err
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_auto_complete_skip_order_service_nil")
		return nil
	}
	olderThanDays := payload.OlderThanDays
	if olderThanDays <= 0 {
		olderThanDays = c.OrderService.AutoCompleteDays()
	}
	updated, err := c.OrderService.AutoComplete(olderThanDays)
	if err != nil {
		logger.Warnw("worker_order_auto_complete_failed", "older_than_days", olderThanDays, "error", err)
		return err
	}
	logger.Debugw("worker_order_auto_complete_done", "older_than_days", olderThanDays, "updated", updated)
	return nil
}
