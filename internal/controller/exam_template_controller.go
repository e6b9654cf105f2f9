package controller

import (
	"driveflow_backend/internal/service"
	"driveflow_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExamTemplateController 考核评分表的只读接口，评分表随种子数据发布，不提供编辑
type ExamTemplateController struct {
	TemplateService *service.ExamTemplateService
}

func NewExamTemplateController(templateService *service.ExamTemplateService) *ExamTemplateController {
	return &ExamTemplateController{TemplateService: templateService}
}

// List godoc
// @Summary 获取全部评分表
// @Tags 评分表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ExamTemplate} "成功"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/exam-templates [get]
func (c *ExamTemplateController) List(ctx *gin.Context) {
	templates, err := c.TemplateService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"templates": templates})
}

// Get godoc
// @Summary 获取评分表详情
// @Tags 评分表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评分表ID"
// @Success 200 {object} util.Response{data=model.ExamTemplate} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "评分表不存在"
// @Router /api/exam-templates/{id} [get]
func (c *ExamTemplateController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "评分表ID无效")
		return
	}

	template, err := c.TemplateService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.Error(ctx, 404, "评分表不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, template)
}

// GetByLicense godoc
// @Summary 按准驾车型获取评分表
// @Description 教练评分前拉取车型对应的评分表渲染打分单
// @Tags 评分表
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "准驾车型ID"
// @Success 200 {object} util.Response{data=model.ExamTemplate} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "该准驾车型没有评分表"
// @Router /api/licenses/{id}/exam-template [get]
func (c *ExamTemplateController) GetByLicense(ctx *gin.Context) {
	licenseID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || licenseID == 0 {
		util.BadRequest(ctx, "准驾车型ID无效")
		return
	}

	template, err := c.TemplateService.GetByLicense(uint(licenseID))
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.Error(ctx, 404, "该准驾车型没有评分表")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, template)
}
