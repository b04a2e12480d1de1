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

type TopicHandler struct {
	Config          *config.Config
	StatsService    service.ITopicStatsService
	PathService     service.ITopicPathService
	FollowService   service.ITopicFollowService
	ActivityService service.IActivityService
}

func (th *TopicHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(th.Config.Jwt.Secret))
	topics := r.Group("/v1/topics/:topicID")
	topics.GET("/stats", context.Wrap(th.GetTopicStats)) // 话题统计
	topics.GET("/path", context.Wrap(th.GetTopicPath))   // 话题层级路径
	topics.POST("/follow", authorize, context.Wrap(th.FollowTopic))
	topics.DELETE("/follow", authorize, context.Wrap(th.UnfollowTopic))
	topics.GET("/follow", authorize, context.Wrap(th.GetFollowStatus))
	topics.POST("/activity", authorize, context.Wrap(th.RecordActivity)) // 上报浏览/发布/点赞

	ranks := r.Group("/v1/topic-ranks")
	ranks.GET("/:rank", context.Wrap(th.GetTopicRanks)) // 排行榜
}

func topicIDParam(c *gin.Context) (uint64, error) {
	topicID, err := strconv.ParseUint(c.Param("topicID"), 10, 64)
	if err != nil || topicID == 0 {
		return 0, response.NewError(http.StatusBadRequest, "无效的话题ID")
	}
	return topicID, nil
}

// GetTopicStats 话题统计，缓存未命中时实时计算（不含排名）
func (th *TopicHandler) GetTopicStats(c *gin.Context) error {
	topicID, err := topicIDParam(c)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c, th.Config)
	defer cancel()
	stats, err := th.StatsService.GetCachedStats(ctx, topicID)
	if err != nil {
		return bizError(err, "获取话题统计失败")
	}

	response.Success(c, toStatsInfo(stats))
	return nil
}

func (th *TopicHandler) GetTopicRanks(c *gin.Context) error {
	rank, err := types.ParseRankColumn(c.Param("rank"))
	if err != nil {
		return response.NewError(http.StatusBadRequest, "无效的排名维度")
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}

	ctx, cancel := requestContext(c, th.Config)
	defer cancel()
	rows, err := th.StatsService.TopTopicsByRank(ctx, rank, limit)
	if err != nil {
		return bizError(err, "获取话题排行失败")
	}

	list := make([]*types.TopicStatsInfo, 0, len(rows))
	for _, row := range rows {
		list = append(list, toStatsInfo(row))
	}
	response.Success(c, types.TopicRankListResponse{Rank: rank, Topics: list})
	return nil
}

func (th *TopicHandler) GetTopicPath(c *gin.Context) error {
	topicID, err := topicIDParam(c)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(c, th.Config)
	defer cancel()
	path, err := th.PathService.Path(ctx, topicID)
	if err != nil {
		return bizError(err, "获取话题路径失败")
	}

	resp := types.TopicPathResponse{Path: make([]*types.TopicInfo, 0, len(path))}
	for _, t := range path {
		resp.Path = append(resp.Path, toTopicInfo(t))
	}
	response.Success(c, resp)
	return nil
}

// FollowTopic 关注话题
func (th *TopicHandler) FollowTopic(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	topicID, err := topicIDParam(c)
	if err != nil {
		return err
	}

	if err := th.FollowService.Follow(c.Request.Context(), userID, topicID); err != nil {
		return bizError(err, "关注话题失败")
	}

	response.Success(c, gin.H{"followed": true})
	return nil
}

// UnfollowTopic 取消关注话题
func (th *TopicHandler) UnfollowTopic(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	topicID, err := topicIDParam(c)
	if err != nil {
		return err
	}

	if err := th.FollowService.Unfollow(c.Request.Context(), userID, topicID); err != nil {
		return bizError(err, "取消关注失败")
	}

	response.Success(c, gin.H{"followed": false})
	return nil
}

func (th *TopicHandler) GetFollowStatus(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	topicID, err := topicIDParam(c)
	if err != nil {
		return err
	}

	followed, err := th.FollowService.IsFollowing(c.Request.Context(), userID, topicID)
	if err != nil {
		return bizError(err, "获取关注状态失败")
	}

	response.Success(c, gin.H{"followed": followed})
	return nil
}

func (th *TopicHandler) RecordActivity(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}
	topicID, err := topicIDParam(c)
	if err != nil {
		return err
	}

	var req types.RecordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	activityType, err := types.ParseActivityType(req.ActivityType)
	if err != nil {
		return response.NewError(http.StatusBadRequest, "无效的行为类型")
	}

	if err := th.ActivityService.Track(c.Request.Context(), userID, topicID, req.NoteID, activityType); err != nil {
		return bizError(err, "上报行为失败")
	}

	response.Success(c, nil)
	return nil
}
