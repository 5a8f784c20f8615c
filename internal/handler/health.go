package handler

import (
	"bnb-wallet/internal/handler/response"

	"github.com/gin-gonic/gin"
)

// HealthCheck 存活探针
func HealthCheck(c *gin.Context) {
	response.Success(c, response.Health{
		Status:  "UP",
		Version: "1.0.0",
		Service: "bnb-wallet",
	})
}
