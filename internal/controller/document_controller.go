package controller

import (
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/service"
	"driveflow_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DocumentController 报名档案附件管理，限本校管理员操作
type DocumentController struct {
	DocumentService *service.DocumentService
}

func NewDocumentController(documentService *service.DocumentService) *DocumentController {
	return &DocumentController{DocumentService: documentService}
}

var documentKinds = map[string]model.DocumentKind{
	string(model.DocMedicalRecord):  model.DocMedicalRecord,
	string(model.DocCriminalRecord): model.DocCriminalRecord,
	string(model.DocIDCopy):         model.DocIDCopy,
	string(model.DocContract):       model.DocContract,
}

// Upload godoc
// @Summary 上传报名档案附件
// @Description 体检报告、无犯罪记录证明、证件复印件或合同，只收PDF和图片
// @Tags 档案附件
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "报名ID"
// @Param kind formData string true "附件类型 medical_record/criminal_record/id_copy/contract"
// @Param file formData file true "附件文件"
// @Success 201 {object} util.Response{data=model.Document} "上传成功"
// @Failure 400 {object} util.Response "文件不合规"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "报名档案不存在"
// @Router /api/school/enrollments/{id}/documents [post]
func (c *DocumentController) Upload(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollmentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || enrollmentID == 0 {
		util.BadRequest(ctx, "报名ID无效")
		return
	}

	kind, ok := documentKinds[ctx.PostForm("kind")]
	if !ok {
		util.BadRequest(ctx, "附件类型无效")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少附件文件")
		return
	}

	document, err := c.DocumentService.Upload(ctx.Request.Context(), claims, uint(enrollmentID), kind, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.Error(ctx, 404, "报名档案不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, document)
}

// List godoc
// @Summary 获取报名档案的附件列表
// @Tags 档案附件
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "报名ID"
// @Success 200 {object} util.Response{data=[]model.Document} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "报名档案不存在"
// @Router /api/school/enrollments/{id}/documents [get]
func (c *DocumentController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollmentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || enrollmentID == 0 {
		util.BadRequest(ctx, "报名ID无效")
		return
	}

	documents, err := c.DocumentService.List(claims, uint(enrollmentID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.Error(ctx, 404, "报名档案不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"documents": documents})
}

// Delete godoc
// @Summary 删除档案附件
// @Tags 档案附件
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "附件ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "附件不存在"
// @Router /api/school/documents/{id} [delete]
func (c *DocumentController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	documentID := ctx.Param("id")
	if documentID == "" {
		util.BadRequest(ctx, "附件ID无效")
		return
	}

	if err := c.DocumentService.Delete(ctx.Request.Context(), claims, documentID); err != nil {
		switch {
		case errors.Is(err, util.ErrDocumentNotFound):
			util.Error(ctx, 404, "附件不存在")
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.Error(ctx, 404, "报名档案不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "附件已删除"})
}
