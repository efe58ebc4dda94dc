package controller

import (
	"strconv"

	"github.com/Ravshan88/online-lesson/internal/service"
	"github.com/Ravshan88/online-lesson/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	Service *service.ProgressService
}

func NewProgressController(svc *service.ProgressService) *ProgressController {
	return &ProgressController{Service: svc}
}

type MarkCompleteReq struct {
	AttachmentID *string `json:"attachment_id"`
	QuestionID   *uint   `json:"test_id"`
}

type MaterialQuizReq struct {
	MaterialID uint            `json:"material_id" binding:"required"`
	Answers    map[uint]string `json:"answers"`
}

// @Summary Mark an attachment or question as completed
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body MarkCompleteReq true "item to mark"
// @Success 200 {object} util.Response
// @Router /api/progress/complete [post]
func (c *ProgressController) MarkComplete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req MarkCompleteReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.Service.MarkComplete(claims.UserID, req.AttachmentID, req.QuestionID)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, progress)
}

// @Summary Submit a material quiz and record correct answers
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body MaterialQuizReq true "answers keyed by question id"
// @Success 200 {object} util.Response
// @Router /api/progress/submit-test [post]
func (c *ProgressController) SubmitMaterialQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req MaterialQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Service.SubmitMaterialQuiz(claims.UserID, req.MaterialID, req.Answers)
	if err != nil {
		if err == util.ErrMaterialNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Get the user's progress for one material
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param materialId path int true "material id"
// @Success 200 {object} util.Response
// @Router /api/progress/material/{materialId} [get]
func (c *ProgressController) GetMaterialProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	materialID, err := strconv.ParseUint(ctx.Param("materialId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	progress, err := c.Service.GetMaterialProgress(claims.UserID, uint(materialID))
	if err != nil {
		if err == util.ErrMaterialNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
