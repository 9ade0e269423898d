package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bookshop-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createBook(t *testing.T, repo *GormProductRepository, name, isbn, category string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		ISBN:     isbn,
		Category: category,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestSearchByKeywordAndCategory(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	createBook(t, repo, "三体", "isbn-1", "科幻奇幻")
	createBook(t, repo, "三体 II 黑暗森林", "isbn-2", "科幻奇幻")
	createBook(t, repo, "活着", "isbn-3", "文学小说")

	rows, total, err := repo.Search(ProductListFilter{Page: 1, PageSize: 10, Search: "三体"})
	if err != nil {
		t.Fatalf("search by keyword failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("keyword search want 2 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = repo.Search(ProductListFilter{Page: 1, PageSize: 10, Category: "文学小说"})
	if err != nil {
		t.Fatalf("search by category failed: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].Name != "活着" {
		t.Fatalf("category search unexpected: total=%d rows=%+v", total, rows)
	}

	// 分页只影响返回行数，总数不变
	rows, total, err = repo.Search(ProductListFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("search with pagination failed: %v", err)
	}
	if total != 3 || len(rows) != 2 {
		t.Fatalf("pagination want total=3 len=2 got total=%d len=%d", total, len(rows))
	}
}

func TestGetByISBNMissingReturnsNil(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	createBook(t, repo, "小王子", "9787020042494", "少儿读物")

	product, err := repo.GetByISBN("no-such-isbn")
	if err != nil {
		t.Fatalf("get by isbn failed: %v", err)
	}
	if product != nil {
		t.Fatalf("missing isbn should return nil, got %+v", product)
	}

	product, err = repo.GetByISBN("9787020042494")
	if err != nil {
		t.Fatalf("get by isbn failed: %v", err)
	}
	if product == nil || product.Name != "小王子" {
		t.Fatalf("unexpected product: %+v", product)
	}
}

func TestCategoryCountsSkipsEmptyCategory(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	createBook(t, repo, "三体", "isbn-1", "科幻奇幻")
	createBook(t, repo, "球状闪电", "isbn-2", "科幻奇幻")
	createBook(t, repo, "活着", "isbn-3", "文学小说")
	createBook(t, repo, "未分类书", "isbn-4", "")

	rows, err := repo.CategoryCounts()
	if err != nil {
		t.Fatalf("category counts failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows len want 2 got %d", len(rows))
	}
	if rows[0].Name != "科幻奇幻" || rows[0].Count != 2 {
		t.Fatalf("top category unexpected: %+v", rows[0])
	}
}

func TestIncrementSalesCountRowsAffected(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)

	book := createBook(t, repo, "三体", "isbn-1", "科幻奇幻")

	affected, err := repo.IncrementSalesCount(book.ID, 3)
	if err != nil {
		t.Fatalf("increment sales failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	affected, err = repo.IncrementSalesCount(book.ID+99, 1)
	if err != nil {
		t.Fatalf("increment missing product failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("missing product affected want 0 got %d", affected)
	}

	if _, err := repo.IncrementSalesCount(book.ID, 0); err == nil {
		t.Fatalf("non-positive quantity should be rejected")
	}

	var got models.Product
	if err := db.First(&got, book.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.SalesCount != 3 {
		t.Fatalf("sales count want 3 got %d", got.SalesCount)
	}
}

func TestListPopularRejectsUnknownColumn(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	if _, err := repo.ListPopular("price", 5); err == nil {
		t.Fatalf("unknown criteria should be rejected")
	}
}
