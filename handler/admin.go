package handler

import (
	"Agora/config"
	"Agora/middleware"
	"Agora/pkg/context"
	"Agora/pkg/response"
	"Agora/service"
	"Agora/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Admin 运维接口，刷新耗时较长，不套用请求超时
type Admin struct {
	Config          *config.Config
	StatsService    service.ITopicStatsService
	ActivityService service.IActivityService
}

func (h *Admin) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/admin", middleware.AdminToken(h.Config.App.AdminToken))
	g.POST("/topic-stats/refresh", context.Wrap(h.RefreshStats))     // mode=all|top&n=100
	g.POST("/topic-activity/purge", context.Wrap(h.PurgeActivity)) // 清理过期行为日志
}

func (h *Admin) RefreshStats(c *gin.Context) error {
	var (
		resp *types.RefreshStatsResponse
		err  error
	)
	switch mode := c.DefaultQuery("mode", "all"); mode {
	case "all":
		resp, err = h.StatsService.RefreshAllStats(c.Request.Context())
	case "top":
		n, convErr := strconv.Atoi(c.DefaultQuery("n", "0"))
		if convErr != nil || n < 0 {
			return response.NewError(http.StatusBadRequest, "n 格式错误")
		}
		resp, err = h.StatsService.RefreshTopStats(c.Request.Context(), n)
	default:
		return response.NewError(http.StatusBadRequest, "mode 只能是 all 或 top")
	}
	if err != nil {
		return bizError(err, "刷新话题统计失败")
	}

	response.Success(c, resp)
	return nil
}

func (h *Admin) PurgeActivity(c *gin.Context) error {
	n, err := h.ActivityService.PurgeExpired(c.Request.Context())
	if err != nil {
		return bizError(err, "清理行为日志失败")
	}

	response.Success(c, gin.H{"deleted": n})
	return nil
}
