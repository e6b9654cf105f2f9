package controller

import (
	"driveflow_backend/internal/service"
	"driveflow_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// SchoolController 驾校档案管理，仅平台管理员可用
type SchoolController struct {
	SchoolService *service.SchoolService
}

func NewSchoolController(schoolService *service.SchoolService) *SchoolController {
	return &SchoolController{SchoolService: schoolService}
}

// Create godoc
// @Summary 创建驾校
// @Tags 驾校管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.SchoolReq true "驾校信息"
// @Success 201 {object} util.Response{data=model.School} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/admin/schools [post]
func (c *SchoolController) Create(ctx *gin.Context) {
	var req service.SchoolReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.SchoolService.Create(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, school)
}

// List godoc
// @Summary 获取驾校列表
// @Tags 驾校管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search query string false "按名称、城市或区县搜索"
// @Param status query string false "状态过滤 active/demo/archived"
// @Param page query int false "页码，默认1" default(1)
// @Param limit query int false "每页数量，默认20" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/admin/schools [get]
func (c *SchoolController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	schools, total, err := c.SchoolService.List(ctx.Query("search"), ctx.Query("status"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  schools,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary 获取驾校详情
// @Tags 驾校管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "驾校ID"
// @Success 200 {object} util.Response{data=model.School} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "驾校不存在"
// @Router /api/admin/schools/{id} [get]
func (c *SchoolController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "驾校ID无效")
		return
	}

	school, err := c.SchoolService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrSchoolNotFound) {
			util.Error(ctx, 404, "驾校不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, school)
}

// Update godoc
// @Summary 更新驾校信息
// @Tags 驾校管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "驾校ID"
// @Param body body service.SchoolReq true "驾校信息"
// @Success 200 {object} util.Response{data=model.School} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "驾校不存在"
// @Router /api/admin/schools/{id} [put]
func (c *SchoolController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "驾校ID无效")
		return
	}

	var req service.SchoolReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school, err := c.SchoolService.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrSchoolNotFound) {
			util.Error(ctx, 404, "驾校不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, school)
}

// Delete godoc
// @Summary 删除驾校
// @Description 软删除驾校档案，历史评分记录保留
// @Tags 驾校管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "驾校ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "驾校不存在"
// @Router /api/admin/schools/{id} [delete]
func (c *SchoolController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "驾校ID无效")
		return
	}

	if err := c.SchoolService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrSchoolNotFound) {
			util.Error(ctx, 404, "驾校不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "驾校已删除"})
}
