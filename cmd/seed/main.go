package main

import (
	"fmt"

	"github.com/bookshop-next/internal/config"
	"github.com/bookshop-next/internal/logger"
	"github.com/bookshop-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categoryNames := []string{"文学小说", "科幻奇幻", "计算机技术", "历史传记", "少儿读物"}
	for _, name := range categoryNames {
		var existing models.Category
		if err := models.DB.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&models.Category{Name: name}).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", name, err)
			} else {
				stdLog.Printf("Created category: %s", name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", name)
		}
	}

	// 添加图书
	products := []models.Product{
		{
			Name:        "三体",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(59.80)),
			Description: "地球文明向宇宙发出的第一声啼鸣，以及它引来的回响。",
			ISBN:        "9787536692930",
			Category:    "科幻奇幻",
			Stock:       120,
			Rating:      4.8,
			Image:       "uploads/covers/santi.jpg",
		},
		{
			Name:        "活着",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(39.50)),
			Description: "讲述一个人和他命运之间的友情的故事。",
			ISBN:        "9787506365437",
			Category:    "文学小说",
			Stock:       85,
			Rating:      4.9,
			Image:       "uploads/covers/huozhe.jpg",
		},
		{
			Name:        "Go 程序设计语言",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(79.00)),
			Description: "Go 语言权威指南，覆盖语言规范与工程实践。",
			ISBN:        "9787111558422",
			Category:    "计算机技术",
			Stock:       60,
			Rating:      4.7,
			Image:       "uploads/covers/gopl.jpg",
		},
		{
			Name:        "万历十五年",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(45.00)),
			Description: "从一个平淡的年份切入，剖析明代社会的制度困局。",
			ISBN:        "9787101146660",
			Category:    "历史传记",
			Stock:       45,
			Rating:      4.6,
			Image:       "uploads/covers/wanli.jpg",
		},
		{
			Name:        "小王子",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(29.90)),
			Description: "献给所有曾经是孩子的大人。",
			ISBN:        "9787020042494",
			Category:    "少儿读物",
			Stock:       200,
			Rating:      4.9,
			Image:       "uploads/covers/xiaowangzi.jpg",
		},
		{
			Name:        "数据库系统概念",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(99.00)),
			Description: "数据库领域的经典教材，第七版。",
			ISBN:        "9787111684640",
			Category:    "计算机技术",
			Stock:       30,
			Rating:      4.5,
			Image:       "uploads/covers/dbconcepts.jpg",
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("isbn = ?", prod.ISBN).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Name)
			}
		} else {
			existing.Name = prod.Name
			existing.PriceAmount = prod.PriceAmount
			existing.Description = prod.Description
			existing.Category = prod.Category
			existing.Stock = prod.Stock
			existing.Rating = prod.Rating
			existing.Image = prod.Image
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Name)
			}
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Printf("- %d Categories\n", len(categoryNames))
	fmt.Printf("- %d Products\n", len(products))
}
