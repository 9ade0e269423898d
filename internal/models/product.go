package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringArray 字符串数组类型，用于存储图片路径等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// MaxProductImages 单个商品附图上限
const MaxProductImages = 10

// Product 图书商品表
type Product struct {
	ID          uint        `gorm:"primarykey" json:"id"`                                      // 主键
	Name        string      `gorm:"not null;index" json:"name"`                                // 书名
	PriceAmount Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"` // 单价
	Description string      `gorm:"type:text" json:"description"`                              // 简介
	ISBN        string      `gorm:"uniqueIndex;not null" json:"isbn"`                          // 国际标准书号
	Image       string      `gorm:"type:varchar(500)" json:"image"`                            // 封面图片路径
	Images      StringArray `gorm:"type:json" json:"images"`                                   // 附图数组（上限 10 张）
	Category    string      `gorm:"index" json:"category"`                                     // 分类名称
	Stock       int         `gorm:"not null;default:0" json:"stock"`                           // 库存
	ViewCount   int         `gorm:"not null;default:0;index" json:"view_count"`                // 浏览次数
	SalesCount  int         `gorm:"not null;default:0;index" json:"sales_count"`               // 累计销量
	Rating      float64     `gorm:"not null;default:0" json:"rating"`                          // 评分
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt   time.Time   `json:"updated_at"`                                                // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
