package models

import "time"

// Admin 管理员账号表
type Admin struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                     // 主键
	Name         string    `gorm:"not null" json:"name"`                                     // 姓名
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`                     // 登录用户名
	PasswordHash string    `gorm:"type:varchar(200);not null" json:"-"`                      // bcrypt 密码哈希
	Role         string    `gorm:"type:varchar(50);not null;default:'staff'" json:"role"`    // 角色（manager/staff）
	Status       string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"` // 状态（active/inactive）
	CreatedAt    time.Time `json:"created_at"`                                               // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                               // 更新时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
