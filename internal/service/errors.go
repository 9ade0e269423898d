package service

import "errors"

// 业务哨兵错误，handler 层通过 errors.Is 映射为响应码
var (
	ErrNotFound                = errors.New("记录不存在")
	ErrInvalidCredentials      = errors.New("用户名或密码错误")
	ErrInvalidPassword         = errors.New("原密码错误")
	ErrWeakPassword            = errors.New("密码强度不足")
	ErrAccountDisabled         = errors.New("账号已停用")
	ErrUsernameExists          = errors.New("用户名已存在")
	ErrPhoneExists             = errors.New("手机号已被注册")
	ErrEmailExists             = errors.New("邮箱已被注册")
	ErrInvalidMemberInput      = errors.New("注册信息不完整")
	ErrInvalidAdminInput       = errors.New("管理员信息不完整")
	ErrInvalidProductInput     = errors.New("商品信息不完整")
	ErrISBNExists              = errors.New("ISBN 已存在")
	ErrCategoryNameRequired    = errors.New("分类名称不能为空")
	ErrCategoryExists          = errors.New("分类已存在")
	ErrTooManyImages           = errors.New("商品附图数量超过上限")
	ErrInvalidCriteria         = errors.New("不支持的热门排序维度")
	ErrEmptyCart               = errors.New("购物车为空")
	ErrInvalidQuantity         = errors.New("数量必须大于 0")
	ErrDeliveryInfoRequired    = errors.New("收货信息不完整")
	ErrRemarkRequired          = errors.New("取消订单必须填写备注")
	ErrInvalidStatusTransition = errors.New("当前订单状态不允许该操作")
)
