package handler

import (
	stdcontext "context"
	"errors"
	"net/http"
	"time"

	"Agora/config"
	"Agora/pkg/log"
	"Agora/pkg/response"
	"Agora/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stdContext = stdcontext.Context

// bizError 把服务层错误翻译成业务错误码
func bizError(err error, msg string) error {
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		return response.NewError(http.StatusNotFound, "话题不存在")
	case errors.Is(err, service.ErrInvalidRankColumn):
		return response.NewError(http.StatusBadRequest, "无效的排名维度")
	case errors.Is(err, service.ErrInvalidActivityType):
		return response.NewError(http.StatusBadRequest, "无效的行为类型")
	case errors.Is(err, stdcontext.DeadlineExceeded):
		return response.NewError(http.StatusGatewayTimeout, msg+": 请求超时")
	default:
		// 内部错误只记日志，不把数据库报错带给客户端
		log.L.Error(msg, zap.Error(err))
		return response.NewError(http.StatusInternalServerError, msg)
	}
}

// requestContext 带上配置的请求超时，未配置时不设截止时间
func requestContext(c *gin.Context, cfg *config.Config) (stdcontext.Context, stdcontext.CancelFunc) {
	ctx := c.Request.Context()
	if cfg == nil || cfg.Server.RequestTimeoutMs <= 0 {
		return stdcontext.WithCancel(ctx)
	}
	return stdcontext.WithTimeout(ctx, time.Duration(cfg.Server.RequestTimeoutMs)*time.Millisecond)
}
