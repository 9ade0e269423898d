package models

import "time"

// Member 会员账号表
type Member struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                     // 主键
	Name         string    `gorm:"not null" json:"name"`                                     // 姓名
	Phone        string    `gorm:"uniqueIndex;not null" json:"phone"`                        // 手机号
	Email        string    `gorm:"index" json:"email"`                                       // 邮箱
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`                     // 登录用户名
	PasswordHash string    `gorm:"type:varchar(200);not null" json:"-"`                      // bcrypt 密码哈希
	Address      string    `gorm:"type:varchar(500)" json:"address"`                         // 收货地址
	Status       string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // 状态（active/inactive）
	CreatedAt    time.Time `json:"created_at"`                                               // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                               // 更新时间
}

// TableName 指定表名
func (Member) TableName() string {
	return "members"
}
