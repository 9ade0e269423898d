package models

import "time"

// Order 订单表
type Order struct {
	ID              uint      `gorm:"primarykey" json:"id"`                 // 主键
	OrderNo         string    `gorm:"uniqueIndex;not null" json:"order_no"` // 订单编号（ORD{yyyymmdd}-{序号}）
	MemberID        uint      `gorm:"index;not null" json:"member_id"`      // 会员ID
	SlipImage       string    `gorm:"type:varchar(500)" json:"slip_image"`  // 转账凭证图片路径
	Status          string    `gorm:"index;not null" json:"status"`         // 订单状态
	TrackCode       string    `gorm:"type:varchar(100)" json:"track_code"`  // 物流单号
	Express         string    `gorm:"type:varchar(100)" json:"express"`     // 快递公司
	Remark          string    `gorm:"type:varchar(500)" json:"remark"`      // 备注
	CustomerName    string    `gorm:"not null" json:"customer_name"`        // 下单时收货人快照
	CustomerPhone   string    `gorm:"not null" json:"customer_phone"`       // 下单时电话快照
	CustomerAddress string    `gorm:"type:varchar(500)" json:"customer_address"` // 下单时地址快照
	CreatedAt       time.Time `gorm:"index" json:"created_at"`              // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                           // 更新时间

	// 关联
	Details []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"` // 订单明细
	Member  *Member       `gorm:"foreignKey:MemberID" json:"member,omitempty"` // 下单会员
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
