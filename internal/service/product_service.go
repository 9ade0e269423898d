package service

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/bookshop-next/internal/constants"
	"github.com/bookshop-next/internal/logger"
	"github.com/bookshop-next/internal/models"
	"github.com/bookshop-next/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	productRepo   repository.ProductRepository
	uploadService *UploadService
}

// NewProductService 创建商品服务实例
func NewProductService(productRepo repository.ProductRepository, uploadService *UploadService) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		uploadService: uploadService,
	}
}

// ProductInput 商品创建/更新参数
type ProductInput struct {
	Name        string
	Price       models.Money
	Description string
	ISBN        string
	Category    string
	Stock       int
	Rating      float64
}

// List 获取全部商品
func (s *ProductService) List() ([]models.Product, error) {
	return s.productRepo.List()
}

// Search 按关键字与分类搜索商品
func (s *ProductService) Search(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.Search(filter)
}

// GetCategories 按分类聚合商品数量
func (s *ProductService) GetCategories() ([]repository.CategoryCountRow, error) {
	return s.productRepo.CategoryCounts()
}

// GetPopular 按维度获取热门商品
func (s *ProductService) GetPopular(criteria string, limit int) ([]models.Product, error) {
	normalized := strings.ToLower(strings.TrimSpace(criteria))
	if normalized == "" {
		normalized = constants.PopularCriteriaViewCount
	}
	switch normalized {
	case constants.PopularCriteriaViewCount, constants.PopularCriteriaSalesCount, constants.PopularCriteriaRating:
	default:
		return nil, ErrInvalidCriteria
	}
	if limit <= 0 {
		limit = 5
	}
	return s.productRepo.ListPopular(normalized, limit)
}

// IncrementView 累加商品浏览次数
func (s *ProductService) IncrementView(id uint) error {
	affected, err := s.productRepo.IncrementViewCount(id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Create 创建商品
// 文件先落盘，数据库写入失败时回删，避免残留孤儿文件。
func (s *ProductService) Create(input ProductInput, cover *multipart.FileHeader, images []*multipart.FileHeader) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	isbn := strings.TrimSpace(input.ISBN)
	if name == "" || isbn == "" {
		return nil, ErrInvalidProductInput
	}
	if len(images) > models.MaxProductImages {
		return nil, ErrTooManyImages
	}

	existing, err := s.productRepo.GetByISBN(isbn)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrISBNExists
	}

	saved := make([]string, 0, len(images)+1)
	coverPath := ""
	if cover != nil {
		coverPath, err = s.uploadService.SaveFile(cover, constants.UploadSceneProduct)
		if err != nil {
			return nil, err
		}
		saved = append(saved, coverPath)
	}
	imagePaths := make(models.StringArray, 0, len(images))
	for _, file := range images {
		path, err := s.uploadService.SaveFile(file, constants.UploadSceneProduct)
		if err != nil {
			s.removeFiles(saved)
			return nil, err
		}
		saved = append(saved, path)
		imagePaths = append(imagePaths, path)
	}

	product := &models.Product{
		Name:        name,
		PriceAmount: input.Price,
		Description: input.Description,
		ISBN:        isbn,
		Image:       coverPath,
		Images:      imagePaths,
		Category:    strings.TrimSpace(input.Category),
		Stock:       input.Stock,
		Rating:      input.Rating,
	}
	if err := s.productRepo.Create(product); err != nil {
		s.removeFiles(saved)
		return nil, err
	}
	return product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input ProductInput, cover *multipart.FileHeader, images []*multipart.FileHeader) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if isbn := strings.TrimSpace(input.ISBN); isbn != "" && isbn != product.ISBN {
		existing, err := s.productRepo.GetByISBN(isbn)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrISBNExists
		}
		product.ISBN = isbn
	}
	if len(images) > models.MaxProductImages {
		return nil, ErrTooManyImages
	}

	saved := make([]string, 0, len(images)+1)
	oldCover := ""
	if cover != nil {
		coverPath, err := s.uploadService.SaveFile(cover, constants.UploadSceneProduct)
		if err != nil {
			return nil, err
		}
		saved = append(saved, coverPath)
		oldCover = product.Image
		product.Image = coverPath
	}
	// 新附图批次整体替换旧图集，旧文件在落库成功后回收
	var oldImages models.StringArray
	if len(images) > 0 {
		newGallery := make(models.StringArray, 0, len(images))
		for _, file := range images {
			path, err := s.uploadService.SaveFile(file, constants.UploadSceneProduct)
			if err != nil {
				s.removeFiles(saved)
				return nil, err
			}
			saved = append(saved, path)
			newGallery = append(newGallery, path)
		}
		oldImages = product.Images
		product.Images = newGallery
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		product.Name = name
	}
	if !input.Price.IsZero() {
		product.PriceAmount = input.Price
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if category := strings.TrimSpace(input.Category); category != "" {
		product.Category = category
	}
	if input.Stock > 0 {
		product.Stock = input.Stock
	}
	if input.Rating > 0 {
		product.Rating = input.Rating
	}

	if err := s.productRepo.Update(product); err != nil {
		s.removeFiles(saved)
		return nil, err
	}
	if oldCover != "" {
		s.removeFiles([]string{oldCover})
	}
	s.removeFiles(oldImages)
	return product, nil
}

// Delete 删除商品及其已上传文件
func (s *ProductService) Delete(id uint) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	files := append([]string{product.Image}, product.Images...)
	s.removeFiles(files)
	return nil
}

// RemoveImage 删除商品单张附图（按文件名匹配）
func (s *ProductService) RemoveImage(id uint, imageName string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	target := ""
	remaining := make(models.StringArray, 0, len(product.Images))
	for _, path := range product.Images {
		if target == "" && filepath.Base(path) == imageName {
			target = path
			continue
		}
		remaining = append(remaining, path)
	}
	if target == "" {
		return nil, ErrNotFound
	}

	product.Images = remaining
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	s.removeFiles([]string{target})
	return product, nil
}

func (s *ProductService) removeFiles(paths []string) {
	for _, path := range paths {
		if strings.TrimSpace(path) == "" {
			continue
		}
		if err := s.uploadService.RemoveFile(path); err != nil {
			logger.Warnw("product_file_remove_failed", "path", path, "error", err)
		}
	}
}
