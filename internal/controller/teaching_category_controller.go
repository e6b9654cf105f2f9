package controller

import (
	"driveflow_backend/internal/service"
	"driveflow_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TeachingCategoryController 班型管理，限本校管理员操作
type TeachingCategoryController struct {
	CategoryService *service.TeachingCategoryService
}

func NewTeachingCategoryController(categoryService *service.TeachingCategoryService) *TeachingCategoryController {
	return &TeachingCategoryController{CategoryService: categoryService}
}

// Create godoc
// @Summary 创建班型
// @Description 班型绑定准驾车型，决定学员考核用哪张评分表
// @Tags 班型管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.TeachingCategoryReq true "班型信息"
// @Success 201 {object} util.Response{data=model.TeachingCategory} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "准驾车型不存在"
// @Router /api/school/teaching-categories [post]
func (c *TeachingCategoryController) Create(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	var req service.TeachingCategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.Create(schoolID, req)
	if err != nil {
		if errors.Is(err, util.ErrLicenseNotFound) {
			util.Error(ctx, 404, "准驾车型不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// List godoc
// @Summary 获取本校班型列表
// @Tags 班型管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.TeachingCategory} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Router /api/school/teaching-categories [get]
func (c *TeachingCategoryController) List(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	categories, err := c.CategoryService.ListBySchool(schoolID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"categories": categories})
}

// Get godoc
// @Summary 获取班型详情
// @Tags 班型管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "班型ID"
// @Success 200 {object} util.Response{data=model.TeachingCategory} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "班型不存在"
// @Router /api/school/teaching-categories/{id} [get]
func (c *TeachingCategoryController) Get(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "班型ID无效")
		return
	}

	category, err := c.CategoryService.GetByID(schoolID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNotFound):
			util.Error(ctx, 404, "班型不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, category)
}

// Update godoc
// @Summary 更新班型
// @Tags 班型管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "班型ID"
// @Param body body service.TeachingCategoryReq true "班型信息"
// @Success 200 {object} util.Response{data=model.TeachingCategory} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "班型不存在"
// @Router /api/school/teaching-categories/{id} [put]
func (c *TeachingCategoryController) Update(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "班型ID无效")
		return
	}

	var req service.TeachingCategoryReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.Update(schoolID, uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNotFound):
			util.Error(ctx, 404, "班型不存在")
		case errors.Is(err, util.ErrLicenseNotFound):
			util.Error(ctx, 404, "准驾车型不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, category)
}

// Delete godoc
// @Summary 删除班型
// @Description 已有学员报名的班型不能删除
// @Tags 班型管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "班型ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "班型不存在"
// @Failure 409 {object} util.Response "班型已有报名"
// @Router /api/school/teaching-categories/{id} [delete]
func (c *TeachingCategoryController) Delete(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "班型ID无效")
		return
	}

	if err := c.CategoryService.Delete(schoolID, uint(id)); err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNotFound):
			util.Error(ctx, 404, "班型不存在")
		case errors.Is(err, util.ErrCategoryInUse):
			util.Conflict(ctx, "该班型已有学员报名，不能删除")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "班型已删除"})
}
