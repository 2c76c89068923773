package controller

import (
	"context"
	"course_recommender/internal/service"
	"course_recommender/internal/util"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	RecommendationService *service.RecommendationService
}

func NewRecommendationController(recommendationService *service.RecommendationService) *RecommendationController {
	return &RecommendationController{RecommendationService: recommendationService}
}

// @Summary 获取课程推荐
// @Description 返回当前有效的推荐；没有有效推荐时重新生成
// @Tags 课程推荐
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Recommendation}
// @Router /api/recommendations [get]
func (c *RecommendationController) GetRecommendations(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	recs, err := c.RecommendationService.GetRecommendations(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}

// @Summary 刷新课程推荐
// @Description 重新打分并替换当前全部推荐
// @Tags 课程推荐
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Recommendation}
// @Router /api/recommendations/refresh [post]
func (c *RecommendationController) RefreshRecommendations(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	recs, err := c.RecommendationService.GenerateRecommendations(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}

// @Summary 关闭推荐
// @Tags 课程推荐
// @Security BearerAuth
// @Produce json
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/recommendations/{courseId}/dismiss [post]
func (c *RecommendationController) Dismiss(ctx *gin.Context) {
	c.feedback(ctx, c.RecommendationService.DismissRecommendation)
}

// @Summary 记录推荐点击
// @Tags 课程推荐
// @Security BearerAuth
// @Produce json
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/recommendations/{courseId}/click [post]
func (c *RecommendationController) TrackClick(ctx *gin.Context) {
	c.feedback(ctx, c.RecommendationService.TrackRecommendationClick)
}

// @Summary 记录通过推荐选课
// @Tags 课程推荐
// @Security BearerAuth
// @Produce json
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/recommendations/{courseId}/enroll [post]
func (c *RecommendationController) TrackEnrollment(ctx *gin.Context) {
	c.feedback(ctx, c.RecommendationService.TrackRecommendationEnrollment)
}

type feedbackFunc func(ctx context.Context, userID, courseID uint) error

func (c *RecommendationController) feedback(ctx *gin.Context, apply feedbackFunc) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	courseID, err := util.ParseID(ctx.Param("courseId"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := apply(ctx.Request.Context(), user.UserID, courseID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 我的推荐反馈统计
// @Tags 课程推荐
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response{data=[]model.RecommendationFeedbackStat}
// @Router /api/recommendations/stats [get]
func (c *RecommendationController) GetMyStats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	c.stats(ctx, user.UserID)
}

// @Summary 全站推荐反馈统计
// @Tags 课程推荐
// @Security BearerAuth
// @Produce json
// @Success 200 {object} util.Response{data=[]model.RecommendationFeedbackStat}
// @Router /api/admin/recommendations/stats [get]
func (c *RecommendationController) GetAllStats(ctx *gin.Context) {
	c.stats(ctx, 0)
}

func (c *RecommendationController) stats(ctx *gin.Context, userID uint) {
	stats, err := c.RecommendationService.GetFeedbackStats(ctx.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
