package service

import (
	"strings"

	"github.com/bookshop-next/internal/constants"
)

// NormalizeStatus 将历史写法归一化为当前状态枚举。
// 未知取值原样返回（已 trim + 小写），由调用方决定如何处理。
func NormalizeStatus(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	switch normalized {
	case constants.LegacyOrderStatusSend, constants.LegacyOrderStatusDelivered:
		return constants.OrderStatusShipped
	case constants.LegacyOrderStatusComplete:
		return constants.OrderStatusCompleted
	default:
		return normalized
	}
}

// allowedTransitions 订单状态机
var allowedTransitions = map[string][]string{
	constants.OrderStatusCreated: {constants.OrderStatusPaid, constants.OrderStatusCanceled},
	constants.OrderStatusPaid:    {constants.OrderStatusShipped, constants.OrderStatusCanceled},
	constants.OrderStatusShipped: {constants.OrderStatusCompleted},
}

// canTransition 判断状态流转是否合法（先归一化历史写法）
func canTransition(from, to string) bool {
	for _, next := range allowedTransitions[NormalizeStatus(from)] {
		if next == NormalizeStatus(to) {
			return true
		}
	}
	return false
}

// shippedStatuses 已发货状态集合（含历史写法，用于查询过滤）
func shippedStatuses() []string {
	return []string{
		constants.OrderStatusShipped,
		constants.LegacyOrderStatusSend,
		constants.LegacyOrderStatusDelivered,
	}
}

// revenueStatuses 计入销售额的订单状态集合（含历史写法）
func revenueStatuses() []string {
	return []string{
		constants.OrderStatusPaid,
		constants.OrderStatusShipped,
		constants.OrderStatusCompleted,
		constants.LegacyOrderStatusSend,
		constants.LegacyOrderStatusDelivered,
		constants.LegacyOrderStatusComplete,
	}
}
