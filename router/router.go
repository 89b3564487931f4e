package router

import (
	"io/fs"
	"net/http"
	"time"

	"galon/api"
	"galon/config"
	_ "galon/docs"
	"galon/database"
	"galon/middleware"
	"galon/service"
	"galon/web"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	// 扫码枪正常使用远低于此频率
	kioskRateLimit = 120
	loginRateLimit = 5
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, admitter *service.Admitter) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	if err := api.RegisterValidators(); err != nil {
		config.LogError("router", "SetupRouter", "register validators", nil, err)
	}

	r := gin.New()
	r.Use(RequestLogger(), gin.Recovery())
	r.Use(CORSMiddleware())

	// 扫码领取页面
	staticFS, _ := fs.Sub(web.StaticFS, ".")
	r.GET("/", func(c *gin.Context) {
		content, err := fs.ReadFile(staticFS, "index.html")
		if err != nil {
			c.String(http.StatusInternalServerError, "failed to load page")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", content)
	})

	// 扫码枪接口（无需登录）
	galonHandler := api.NewGalonHandler(admitter)
	kiosk := r.Group("/api")
	kiosk.Use(middleware.RateLimit(kioskRateLimit, time.Minute))
	{
		kiosk.GET("/employee/*employee_code", galonHandler.GetEmployee)
		kiosk.POST("/galon/transaction", galonHandler.CreateTransaction)
	}

	// 后台管理 API
	authHandler := api.NewAuthHandler(cfg)
	admin := r.Group("/admin")
	{
		admin.POST("/login", middleware.RateLimit(loginRateLimit, time.Minute), authHandler.Login)

		authorized := admin.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/profile", authHandler.Profile)

			employeeHandler := api.NewEmployeeHandler(admitter)
			employees := authorized.Group("/employees")
			{
				employees.GET("", employeeHandler.List)
				employees.POST("", employeeHandler.Create)
				employees.GET("/:id", employeeHandler.Get)
				employees.PUT("/:id", employeeHandler.Update)
				employees.DELETE("/:id", employeeHandler.Delete)
			}

			reportHandler := api.NewReportHandler(admitter)
			authorized.GET("/reports/monthly", reportHandler.Monthly)
			authorized.GET("/reports/monthly/excel", reportHandler.MonthlyExcel)

			notifyHandler := api.NewNotifyHandler(&cfg.Email)
			authorized.GET("/email/config", notifyHandler.Config)
			authorized.POST("/email/test", notifyHandler.SendTest)
		}
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health-check", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().In(cfg.App.Location).Format(time.RFC3339),
		})
	})
	r.GET("/health", func(c *gin.Context) {
		if err := database.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "error",
				"database": config.SafeErrorMessage(err, "unavailable"),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestLogger 使用 logrus 记录访问日志
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := config.Logger().WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
			"ip":      c.ClientIP(),
		})
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("request")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
