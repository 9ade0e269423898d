package service

import (
	"strings"

	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	memberRepo  repository.MemberRepository
}

// NewCartService 创建购物车服务实例
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, memberRepo repository.MemberRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		memberRepo:  memberRepo,
	}
}

// CartItemDetail 购物车明细视图
type CartItemDetail struct {
	ID        uint         `json:"id"`
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	Image     string       `json:"image"`
	Price     models.Money `json:"price"`
	Quantity  int          `json:"quantity"`
	Subtotal  models.Money `json:"subtotal"`
}

// SetQuantity 覆盖写入购物车数量
// 数量缺省按 1 处理；指定 lineID 时直接覆盖该行，否则按 (member, product) 查找或新建。
func (s *CartService) SetQuantity(memberID, productID uint, quantity int, lineID uint) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	if lineID != 0 {
		item, err := s.cartRepo.GetByID(lineID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.MemberID != memberID {
			return nil, ErrNotFound
		}
		if err := s.cartRepo.UpdateQuantity(item.ID, quantity); err != nil {
			return nil, err
		}
		item.Quantity = quantity
		return item, nil
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	existing, err := s.cartRepo.GetByMemberAndProduct(memberID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		item := &models.CartItem{
			MemberID:  memberID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.Create(item); err != nil {
			return nil, err
		}
		return item, nil
	}

	if err := s.cartRepo.UpdateQuantity(existing.ID, quantity); err != nil {
		return nil, err
	}
	existing.Quantity = quantity
	return existing, nil
}

// IncrementQuantity 累加购物车数量（不存在则按 delta 新建）
func (s *CartService) IncrementQuantity(memberID, productID uint, delta int) (*models.CartItem, error) {
	if delta <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	existing, err := s.cartRepo.GetByMemberAndProduct(memberID, productID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		item := &models.CartItem{
			MemberID:  memberID,
			ProductID: productID,
			Quantity:  delta,
		}
		if err := s.cartRepo.Create(item); err != nil {
			return nil, err
		}
		return item, nil
	}

	if _, err := s.cartRepo.IncrementQuantity(existing.ID, delta); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByID(existing.ID)
}

// ListByMember 获取会员购物车明细与合计金额
func (s *CartService) ListByMember(memberID uint) ([]CartItemDetail, models.Money, error) {
	items, err := s.cartRepo.ListByMember(memberID)
	if err != nil {
		return nil, models.Money{}, err
	}

	details := make([]CartItemDetail, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		detail := CartItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			detail.Name = item.Product.Name
			detail.Image = item.Product.Image
			detail.Price = item.Product.PriceAmount
			subtotal := item.Product.PriceAmount.Mul(decimal.NewFromInt(int64(item.Quantity)))
			detail.Subtotal = models.NewMoneyFromDecimal(subtotal)
			total = total.Add(subtotal)
		}
		details = append(details, detail)
	}
	return details, models.NewMoneyFromDecimal(total), nil
}

// RemoveLine 删除购物车行（校验归属）
func (s *CartService) RemoveLine(memberID, lineID uint) error {
	item, err := s.cartRepo.GetByID(lineID)
	if err != nil {
		return err
	}
	if item == nil || item.MemberID != memberID {
		return ErrNotFound
	}
	return s.cartRepo.Delete(lineID)
}

// UpdateDeliveryInfo 更新会员收货信息（结算前确认）
func (s *CartService) UpdateDeliveryInfo(memberID uint, name, phone, address string) (*models.Member, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	address = strings.TrimSpace(address)
	if name == "" || phone == "" || address == "" {
		return nil, ErrDeliveryInfoRequired
	}

	member, err := s.memberRepo.GetByID(memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}

	if err := s.memberRepo.UpdateDeliveryInfo(memberID, name, phone, address); err != nil {
		return nil, err
	}
	member.Name = name
	member.Phone = phone
	member.Address = address
	return member, nil
}
