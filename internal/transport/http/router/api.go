package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	mdw "go-circle-api/internal/transport/http/middleware"
)

// Version 对外暴露的程序版本，构建时可用 -ldflags 覆盖
var Version = "0.1.0"

func NewAPIEngine(l *zap.Logger, db *gorm.DB) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, Version) })
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/version", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"version": Version}) })

	api := r.Group("/api/v1")
	MountAPIModules(api, NewCircleModule(db, l))

	return r
}
