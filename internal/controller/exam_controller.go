package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Ravshan88/online-lesson/internal/service"
	"github.com/Ravshan88/online-lesson/internal/util"

	"github.com/gin-gonic/gin"
)

// ExamController exposes the final-exam lifecycle over HTTP.
type ExamController struct {
	Service *service.ExamService
}

func NewExamController(svc *service.ExamService) *ExamController {
	return &ExamController{Service: svc}
}

type ExamSubmitReq struct {
	SessionID string          `json:"sessionId" binding:"required"`
	IssuedIDs []uint          `json:"issuedQuestionIds"`
	Answers   map[uint]string `json:"answers"`
}

// @Summary Start a one-shot final exam session
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/test-sessions/start [post]
func (c *ExamController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.Service.StartExam(ctx.Request.Context(), claims.UserID)
	if err != nil {
		switch err {
		case util.ErrExamAlreadyTaken:
			// The rejection carries the stored result id so the client can
			// fetch it directly.
			body := gin.H{}
			if status, serr := c.Service.CheckStatus(claims.UserID); serr == nil && status.ExistingSessionID != nil {
				body["existingSessionId"] = *status.ExistingSessionID
			}
			ctx.JSON(http.StatusConflict, util.Response{
				Code:    http.StatusConflict,
				Message: err.Error(),
				Data:    body,
			})
		case util.ErrNoQuestionsAvailable:
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}

// @Summary Submit exam answers and receive the graded result
// @Tags exam
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ExamSubmitReq true "session id and answers"
// @Success 200 {object} util.Response
// @Router /api/test-sessions/submit [post]
func (c *ExamController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ExamSubmitReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.Service.SubmitExam(ctx.Request.Context(), claims.UserID, req.SessionID, req.IssuedIDs, req.Answers)
	if err != nil {
		switch err {
		case util.ErrExamAlreadySubmitted:
			util.Conflict(ctx, err.Error())
		case util.ErrUnknownQuestions:
			util.BadRequest(ctx, err.Error())
		case util.ErrSessionNotFound:
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}

// @Summary Check whether the user has taken the exam
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/test-sessions/check/status [get]
func (c *ExamController) CheckStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	status, err := c.Service.CheckStatus(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// @Summary List the user's exam history
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "max results" default(20)
// @Success 200 {object} util.Response
// @Router /api/test-sessions/history [get]
func (c *ExamController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit := 20
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			util.BadRequest(ctx, "invalid limit")
			return
		}
		limit = parsed
	}

	sessions, err := c.Service.History(claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"results": sessions, "count": len(sessions)})
}

// @Summary Get one stored exam result
// @Tags exam
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path string true "session id"
// @Success 200 {object} util.Response
// @Router /api/test-sessions/{sessionId} [get]
func (c *ExamController) GetResult(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.Service.GetResult(claims.UserID, ctx.Param("sessionId"))
	if err != nil {
		if err == util.ErrSessionNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// @Summary Download the certificate for a passed exam
// @Tags exam
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param sessionId path string true "session id"
// @Success 200 {file} binary
// @Router /api/test-sessions/certificate/{sessionId} [get]
func (c *ExamController) Certificate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := ctx.Param("sessionId")
	pdf, err := c.Service.Certificate(claims.UserID, sessionID)
	if err != nil {
		switch err {
		case util.ErrSessionNotFound:
			util.NotFound(ctx)
		case util.ErrNotEligibleForCertificate:
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="sertifikat_%s.pdf"`, sessionID))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}
