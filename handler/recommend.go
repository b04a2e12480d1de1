package handler

import (
	"Agora/config"
	"Agora/middleware"
	"Agora/pkg/context"
	"Agora/pkg/response"
	"Agora/service"
	"Agora/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Recommend struct {
	Config           *config.Config
	RecommendService service.ITopicRecommendService
}

func (h *Recommend) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/recommend/topics", authorize)
	g.GET("", context.Wrap(h.Hybrid))                      // 为你推荐
	g.GET("/collaborative", context.Wrap(h.Collaborative)) // 相似用户也关注了
	g.GET("/content", context.Wrap(h.ContentBased))        // 根据你的浏览行为
}

func (h *Recommend) Hybrid(c *gin.Context) error {
	return h.recommend(c, service.SourceHybrid, h.RecommendService.Recommend)
}

func (h *Recommend) Collaborative(c *gin.Context) error {
	return h.recommend(c, service.SourceCollaborative, h.RecommendService.RecommendCollaborative)
}

func (h *Recommend) ContentBased(c *gin.Context) error {
	return h.recommend(c, service.SourceContent, h.RecommendService.RecommendContentBased)
}

type recommendFunc = func(ctx stdContext, userID uint64, limit int) ([]*types.RecommendedTopic, error)

func (h *Recommend) recommend(c *gin.Context, source string, fn recommendFunc) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	var req types.RecommendTopicsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "limit 格式错误")
	}
	if req.Limit <= 0 {
		req.Limit = types.DefaultRecommendLimit
	}
	if req.Limit > types.MaxRecommendLimit {
		req.Limit = types.MaxRecommendLimit
	}

	ctx, cancel := requestContext(c, h.Config)
	defer cancel()
	topics, err := fn(ctx, userID, req.Limit)
	if err != nil {
		return bizError(err, "获取推荐话题失败")
	}

	response.Success(c, types.RecommendTopicsResponse{Topics: topics, Source: source})
	return nil
}
