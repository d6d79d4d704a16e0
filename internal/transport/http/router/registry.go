package router

import (
	"sort"

	"github.com/gin-gonic/gin"
)

// 模块可选择实现其中一个或两个接口
type APIModule interface{ MountAPI(*gin.RouterGroup) }
type OpsModule interface{ MountOps(*gin.RouterGroup) }

// 可选：实现该接口可控制挂载顺序（数值越小越先挂）
type prioritizer interface{ Priority() int }

func MountAPIModules(api *gin.RouterGroup, mods ...APIModule) {
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountAPI(api)
	}
}

func MountOpsModules(ops *gin.RouterGroup, mods ...OpsModule) {
	sort.SliceStable(mods, func(i, j int) bool {
		return priorityOf(mods[i]) < priorityOf(mods[j])
	})
	for _, m := range mods {
		m.MountOps(ops)
	}
}

func priorityOf(v any) int {
	if p, ok := v.(prioritizer); ok {
		return p.Priority()
	}
	return 100
}
