package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewOpsEngine 运维面：指标、健康检查、数据查档。不对公网开放
func NewOpsEngine(l *zap.Logger, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.Ginzap(l, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(l, true))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ops := r.Group("/ops/v1")
	MountOpsModules(ops, NewCircleModule(db, l))

	return r
}
