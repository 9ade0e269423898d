package router

import (
	"fmt"
	"strings"

	"github.com/bookshop-next/internal/cache"
	"github.com/bookshop-next/internal/config"
	adminhandlers "github.com/bookshop-next/internal/http/handlers/admin"
	publichandlers "github.com/bookshop-next/internal/http/handlers/public"
	"github.com/bookshop-next/internal/logger"
	"github.com/bookshop-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bs"
	}
	redisClient := cache.Client()
	memberLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:member_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的封面与转账凭证）
	r.Static("/uploads", "./uploads")

	api := r.Group("/api")
	{
		// 会员接口
		member := api.Group("/member")
		{
			member.POST("/sign-up", publicHandler.MemberSignUp)
			member.POST("/sign-in", RateLimitMiddleware(redisClient, memberLoginRule, KeyByIPAndJSONField("username")), publicHandler.MemberSignIn)

			authed := member.Use(MemberJWTAuthMiddleware(cfg.MemberJWT.SecretKey, c.MemberRepo))
			{
				authed.GET("/info", publicHandler.MemberInfo)
				authed.GET("/history", publicHandler.MemberHistory)
			}
		}

		// 商品接口（浏览公开，维护需管理员权限）
		product := api.Group("/product")
		{
			product.GET("/list", publicHandler.ListProducts)
			product.GET("/search", publicHandler.SearchProducts)
			product.GET("/categories", publicHandler.ProductCategories)
			product.GET("/popular", publicHandler.PopularProducts)
			product.PUT("/view/:id", publicHandler.IncrementProductView)

			managed := product.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				managed.POST("/create", adminHandler.CreateProduct)
				managed.PUT("/update/:id", adminHandler.UpdateProduct)
				managed.DELETE("/remove/:id", adminHandler.RemoveProduct)
				managed.DELETE("/remove-image/:id/:imageName", adminHandler.RemoveProductImage)
			}
		}

		// 分类管理接口
		category := api.Group("/category")
		category.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
		{
			category.GET("/list", adminHandler.ListCategories)
			category.POST("/create", adminHandler.CreateCategory)
			category.DELETE("/remove/:id", adminHandler.RemoveCategory)
		}

		// 购物车与下单接口（需会员登录）
		cart := api.Group("/cart")
		cart.Use(MemberJWTAuthMiddleware(cfg.MemberJWT.SecretKey, c.MemberRepo))
		{
			cart.POST("/add", publicHandler.AddCartItem)
			cart.PUT("/update", publicHandler.UpdateCartItem)
			cart.PUT("/increment", publicHandler.IncrementCartItem)
			cart.GET("/list/:memberId", publicHandler.ListCart)
			cart.DELETE("/remove/:id", publicHandler.RemoveCartItem)
			cart.POST("/confirm", publicHandler.ConfirmDeliveryInfo)
			cart.POST("/uploadSlip", publicHandler.UploadSlip)
			cart.POST("/confirmOrder", publicHandler.ConfirmOrder)
			cart.PUT("/confirm-received/:orderId", publicHandler.ConfirmReceived)
		}

		// 管理员接口
		admin := api.Group("/admin")
		{
			admin.POST("/signin", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminSignin)

			authorized := admin.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.POST("/create", adminHandler.AdminCreate)
				authorized.GET("/info", adminHandler.AdminInfo)
				authorized.PUT("/update", adminHandler.AdminUpdateSelf)
				authorized.GET("/list", adminHandler.AdminList)
				authorized.PUT("/update-data/:id", adminHandler.AdminUpdateData)
				authorized.DELETE("/remove/:id", adminHandler.AdminRemove)
			}
		}

		// 订单管理接口
		order := api.Group("/order")
		order.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
		{
			order.GET("/list", adminHandler.ListOrders)
			order.PUT("/send", adminHandler.SendOrder)
			order.PUT("/paid/:id", adminHandler.MarkOrderPaid)
			order.PUT("/cancel/:id", adminHandler.CancelOrder)
			order.POST("/auto-complete", adminHandler.AutoCompleteOrders)
		}

		// 仪表盘接口
		dashboard := api.Group("/dashboard")
		dashboard.Use(AdminJWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
		{
			dashboard.GET("", adminHandler.Dashboard)
			dashboard.GET("/monthly-sales/:year", adminHandler.MonthlySales)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
