package models

import "time"

// OrderDetail 订单明细表
type OrderDetail struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                // 主键
	OrderID   uint      `gorm:"index;not null" json:"order_id"`                      // 订单ID
	ProductID uint      `gorm:"index;not null" json:"product_id"`                    // 商品ID
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 下单时单价快照
	Quantity  int       `gorm:"not null" json:"quantity"`                            // 数量
	CreatedAt time.Time `json:"created_at"`                                          // 创建时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (OrderDetail) TableName() string {
	return "order_details"
}
