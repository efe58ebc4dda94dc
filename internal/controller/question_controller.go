package controller

import (
	"strconv"

	"github.com/Ravshan88/online-lesson/internal/service"
	"github.com/Ravshan88/online-lesson/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary Create a question for a material
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param material_id query int true "material id"
// @Param body body service.QuestionReq true "question"
// @Success 201 {object} util.Response
// @Router /api/tests [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	materialID, err := strconv.ParseUint(ctx.Query("material_id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.Create(uint(materialID), req)
	if err != nil {
		if err == util.ErrMaterialNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary List the entire question bank
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/tests [get]
func (c *QuestionController) ListAll(ctx *gin.Context) {
	questions, err := c.Service.ListAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary List a material's questions (admin view)
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param materialId path int true "material id"
// @Success 200 {object} util.Response
// @Router /api/tests/material/{materialId} [get]
func (c *QuestionController) ListByMaterial(ctx *gin.Context) {
	materialID, err := strconv.ParseUint(ctx.Param("materialId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	questions, err := c.Service.ListByMaterial(uint(materialID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// @Summary List a material's quiz without answers (student view)
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param materialId path int true "material id"
// @Success 200 {object} util.Response
// @Router /api/tests/material/{materialId}/quiz [get]
func (c *QuestionController) StudentQuiz(ctx *gin.Context) {
	materialID, err := strconv.ParseUint(ctx.Param("materialId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	quiz, err := c.Service.StudentQuiz(uint(materialID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary Get one question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	question, err := c.Service.Get(uint(id))
	if err != nil {
		if err == util.ErrQuestionNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary Update a question
// @Tags questions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Param body body service.QuestionReq true "question"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.Service.Update(uint(id), req)
	if err != nil {
		if err == util.ErrQuestionNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary Delete a question
// @Tags questions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question id"
// @Success 200 {object} util.Response
// @Router /api/tests/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.Service.Delete(uint(id)); err != nil {
		if err == util.ErrQuestionNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "question deleted"})
}
