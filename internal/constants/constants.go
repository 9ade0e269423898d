package constants

// 订单状态常量
const (
	OrderStatusCreated   = "created"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCanceled  = "canceled"
)

// 历史数据中的旧订单状态写法（读取时归一化）
const (
	LegacyOrderStatusSend      = "send"
	LegacyOrderStatusDelivered = "delivered"
	LegacyOrderStatusComplete  = "complete"
)

// 账号状态常量
const (
	AccountStatusActive   = "active"
	AccountStatusInactive = "inactive"
)

// 管理员角色常量
const (
	AdminRoleManager = "manager"
	AdminRoleStaff   = "staff"
)

// 热门商品排序维度常量
const (
	PopularCriteriaViewCount  = "view_count"
	PopularCriteriaSalesCount = "sales_count"
	PopularCriteriaRating     = "rating"
)

// 上传场景常量
const (
	UploadSceneProduct = "product"
	UploadSceneSlip    = "slip"
)

// 队列常量
const (
	QueueDefault          = "default"
	TaskOrderAutoComplete = "order:auto_complete"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "bs"
)

// 订单编号前缀
const (
	OrderNoPrefix = "ORD"
)

// 自动完成默认天数（已发货订单超过该天数自动转为已完成）
const (
	OrderAutoCompleteDefaultDays = 15
)
