package server

import (
	"bnb-wallet/internal/handler"
	"bnb-wallet/pkg/monitor"
	"bnb-wallet/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHTTPRouter 初始化并返回一个 Gin Engine
func NewHTTPRouter(transfer *handler.TransferHandler) *gin.Engine {
	// 0. 初始化监控指标和校验规则
	monitor.Init()
	validator.Init()

	// 1. 创建 Engine (使用默认中间件: Logger, Recovery)
	r := gin.Default()

	// 2. 注册通用中间件
	r.Use(monitor.PrometheusMiddleware())

	// 3. 注册基础路由
	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 4. 注册 API 路由组
	api := r.Group("/api/v1")
	{
		api.GET("/gas-price", transfer.GasPrice)
		api.GET("/network", transfer.Network)
		api.GET("/balance/:address", transfer.Balance)
		api.GET("/tx/:hash/status", transfer.TxStatus)
		api.POST("/transfer", transfer.Transfer)
	}

	return r
}
