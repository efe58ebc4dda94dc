package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Ravshan88/online-lesson/internal/service"
	"github.com/Ravshan88/online-lesson/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController serves sections, materials and attachments.
type ContentController struct {
	Service *service.ContentService
}

func NewContentController(svc *service.ContentService) *ContentController {
	return &ContentController{Service: svc}
}

type SectionReq struct {
	Name string `json:"name" binding:"required,max=50"`
}

// @Summary List sections with material counts
// @Tags sections
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/sections [get]
func (c *ContentController) ListSections(ctx *gin.Context) {
	sections, err := c.Service.ListSections()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

// @Summary Get one section
// @Tags sections
// @Produce json
// @Param id path int true "section id"
// @Success 200 {object} util.Response
// @Router /api/sections/{id} [get]
func (c *ContentController) GetSection(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid section id")
		return
	}

	section, err := c.Service.GetSection(uint(id))
	if err != nil {
		if err == util.ErrSectionNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, section)
}

// @Summary Create a section
// @Tags sections
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body SectionReq true "section"
// @Success 201 {object} util.Response
// @Router /api/sections [post]
func (c *ContentController) CreateSection(ctx *gin.Context) {
	var req SectionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.Service.CreateSection(req.Name)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, section)
}

// @Summary Rename a section
// @Tags sections
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Param body body SectionReq true "section"
// @Success 200 {object} util.Response
// @Router /api/sections/{id} [put]
func (c *ContentController) UpdateSection(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid section id")
		return
	}

	var req SectionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	section, err := c.Service.UpdateSection(uint(id), req.Name)
	if err != nil {
		if err == util.ErrSectionNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, section)
}

// @Summary Delete a section
// @Tags sections
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "section id"
// @Success 200 {object} util.Response
// @Router /api/sections/{id} [delete]
func (c *ContentController) DeleteSection(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid section id")
		return
	}
	if err := c.Service.DeleteSection(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "section deleted"})
}

func materialInputFromForm(ctx *gin.Context) (service.MaterialInput, error) {
	sectionID, err := strconv.ParseUint(ctx.PostForm("section_id"), 10, 32)
	if err != nil {
		return service.MaterialInput{}, err
	}

	input := service.MaterialInput{
		SectionID: uint(sectionID),
		Title:     ctx.PostForm("title"),
		VideoType: ctx.PostForm("video_type"),
		VideoURL:  ctx.PostForm("video_url"),
	}

	if file, err := ctx.FormFile("pdf_file"); err == nil {
		input.PDFFile = file
	}
	if file, err := ctx.FormFile("video_file"); err == nil {
		input.VideoFile = file
	}
	return input, nil
}

// @Summary Create a material with optional PDF/video uploads
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param section_id formData int true "section id"
// @Param title formData string true "title"
// @Param video_type formData string false "youtube or file"
// @Param video_url formData string false "youtube url"
// @Param pdf_file formData file false "pdf document"
// @Param video_file formData file false "video file"
// @Success 201 {object} util.Response
// @Router /api/materials [post]
func (c *ContentController) CreateMaterial(ctx *gin.Context) {
	input, err := materialInputFromForm(ctx)
	if err != nil {
		util.BadRequest(ctx, "invalid section id")
		return
	}

	material, err := c.Service.CreateMaterial(ctx.Request.Context(), input)
	if err != nil {
		if err == util.ErrSectionNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, material)
}

// @Summary List materials of a section
// @Tags materials
// @Produce json
// @Param sectionId path int true "section id"
// @Success 200 {object} util.Response
// @Router /api/materials/sectionId/{sectionId} [get]
func (c *ContentController) ListMaterialsBySection(ctx *gin.Context) {
	sectionID, err := strconv.ParseUint(ctx.Param("sectionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid section id")
		return
	}

	materials, err := c.Service.ListMaterialsBySection(uint(sectionID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, materials)
}

// @Summary Get one material
// @Tags materials
// @Produce json
// @Param id path int true "material id"
// @Success 200 {object} util.Response
// @Router /api/materials/{id} [get]
func (c *ContentController) GetMaterial(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	material, err := c.Service.GetMaterial(uint(id))
	if err != nil {
		if err == util.ErrMaterialNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

// @Summary Update a material
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "material id"
// @Success 200 {object} util.Response
// @Router /api/materials/{id} [put]
func (c *ContentController) UpdateMaterial(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	input, err := materialInputFromForm(ctx)
	if err != nil {
		util.BadRequest(ctx, "invalid section id")
		return
	}

	material, err := c.Service.UpdateMaterial(ctx.Request.Context(), uint(id), input)
	if err != nil {
		if err == util.ErrMaterialNotFound || err == util.ErrSectionNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, material)
}

// @Summary Delete a material and its questions
// @Tags materials
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "material id"
// @Success 200 {object} util.Response
// @Router /api/materials/{id} [delete]
func (c *ContentController) DeleteMaterial(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	if err := c.Service.DeleteMaterial(uint(id)); err != nil {
		if err == util.ErrMaterialNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "material deleted"})
}

// @Summary Download a material's PDF
// @Tags materials
// @Produce application/pdf
// @Param id path int true "material id"
// @Success 200 {file} binary
// @Router /api/materials/get_pdf/{id} [get]
func (c *ContentController) GetMaterialPDF(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid material id")
		return
	}

	attachment, err := c.Service.MaterialPDF(uint(id))
	if err != nil {
		if err == util.ErrMaterialNotFound {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	// Local uploads are streamed from disk; remote storage redirects.
	if strings.HasPrefix(attachment.Path, "/uploads/") {
		local := strings.TrimPrefix(attachment.Path, "/uploads/")
		ctx.FileAttachment(c.Service.Storage.Cfg.Storage.LocalPath+"/"+local, attachment.Name)
		return
	}
	ctx.Redirect(http.StatusFound, attachment.Path)
}
