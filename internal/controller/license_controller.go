package controller

import (
	"driveflow_backend/internal/service"
	"driveflow_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// LicenseController 准驾车型管理。列表对所有登录用户开放，增删改仅平台管理员
type LicenseController struct {
	LicenseService *service.LicenseService
}

func NewLicenseController(licenseService *service.LicenseService) *LicenseController {
	return &LicenseController{LicenseService: licenseService}
}

// List godoc
// @Summary 获取准驾车型列表
// @Tags 准驾车型
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.License} "成功"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/licenses [get]
func (c *LicenseController) List(ctx *gin.Context) {
	licenses, err := c.LicenseService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"licenses": licenses})
}

// Create godoc
// @Summary 创建准驾车型
// @Tags 准驾车型
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.LicenseReq true "车型信息"
// @Success 201 {object} util.Response{data=model.License} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "车型已存在"
// @Router /api/admin/licenses [post]
func (c *LicenseController) Create(ctx *gin.Context) {
	var req service.LicenseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	license, err := c.LicenseService.Create(req)
	if err != nil {
		if errors.Is(err, util.ErrLicenseRegistered) {
			util.Conflict(ctx, "该准驾车型已存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, license)
}

// Update godoc
// @Summary 更新准驾车型
// @Tags 准驾车型
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "车型ID"
// @Param body body service.LicenseReq true "车型信息"
// @Success 200 {object} util.Response{data=model.License} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "车型不存在"
// @Router /api/admin/licenses/{id} [put]
func (c *LicenseController) Update(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "车型ID无效")
		return
	}

	var req service.LicenseReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	license, err := c.LicenseService.Update(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrLicenseNotFound) {
			util.Error(ctx, 404, "准驾车型不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, license)
}

// Delete godoc
// @Summary 删除准驾车型
// @Tags 准驾车型
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "车型ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "车型不存在"
// @Router /api/admin/licenses/{id} [delete]
func (c *LicenseController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "车型ID无效")
		return
	}

	if err := c.LicenseService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrLicenseNotFound) {
			util.Error(ctx, 404, "准驾车型不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "准驾车型已删除"})
}
