package controller

import (
	"driveflow_backend/internal/service"
	"driveflow_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// VehicleController 教练车管理，限本校管理员操作
type VehicleController struct {
	VehicleService *service.VehicleService
}

func NewVehicleController(vehicleService *service.VehicleService) *VehicleController {
	return &VehicleController{VehicleService: vehicleService}
}

func schoolIDFromClaims(ctx *gin.Context) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.SchoolID == nil {
		util.Forbidden(ctx)
		return 0, false
	}
	return *claims.SchoolID, true
}

// Create godoc
// @Summary 登记教练车
// @Tags 车辆管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.VehicleReq true "车辆信息"
// @Success 201 {object} util.Response{data=model.Vehicle} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "准驾车型不存在"
// @Failure 409 {object} util.Response "车牌已登记"
// @Router /api/school/vehicles [post]
func (c *VehicleController) Create(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	var req service.VehicleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	vehicle, err := c.VehicleService.Create(schoolID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLicenseNotFound):
			util.Error(ctx, 404, "准驾车型不存在")
		case errors.Is(err, util.ErrPlateRegistered):
			util.Conflict(ctx, "该车牌已在本校登记")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, vehicle)
}

// List godoc
// @Summary 获取本校车辆列表
// @Description 支持按年检或保险到期天数筛选需要关注的车辆
// @Tags 车辆管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expiringInDays query int false "仅显示N天内年检或保险到期的车辆"
// @Param page query int false "页码，默认1" default(1)
// @Param limit query int false "每页数量，默认20" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Router /api/school/vehicles [get]
func (c *VehicleController) List(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	expiringInDays, _ := strconv.Atoi(ctx.DefaultQuery("expiringInDays", "0"))

	vehicles, total, err := c.VehicleService.ListBySchool(schoolID, expiringInDays, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  vehicles,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary 获取车辆详情
// @Tags 车辆管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "车辆ID"
// @Success 200 {object} util.Response{data=model.Vehicle} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "车辆不存在"
// @Router /api/school/vehicles/{id} [get]
func (c *VehicleController) Get(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "车辆ID无效")
		return
	}

	vehicle, err := c.VehicleService.GetByID(schoolID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrVehicleNotFound):
			util.Error(ctx, 404, "车辆不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, vehicle)
}

// Update godoc
// @Summary 更新车辆信息
// @Tags 车辆管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "车辆ID"
// @Param body body service.VehicleReq true "车辆信息"
// @Success 200 {object} util.Response{data=model.Vehicle} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "车辆不存在"
// @Router /api/school/vehicles/{id} [put]
func (c *VehicleController) Update(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "车辆ID无效")
		return
	}

	var req service.VehicleReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	vehicle, err := c.VehicleService.Update(schoolID, uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrVehicleNotFound):
			util.Error(ctx, 404, "车辆不存在")
		case errors.Is(err, util.ErrLicenseNotFound):
			util.Error(ctx, 404, "准驾车型不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrPlateRegistered):
			util.Conflict(ctx, "该车牌已在本校登记")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, vehicle)
}

// Delete godoc
// @Summary 删除车辆
// @Tags 车辆管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "车辆ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "车辆不存在"
// @Router /api/school/vehicles/{id} [delete]
func (c *VehicleController) Delete(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "车辆ID无效")
		return
	}

	if err := c.VehicleService.Delete(schoolID, uint(id)); err != nil {
		switch {
		case errors.Is(err, util.ErrVehicleNotFound):
			util.Error(ctx, 404, "车辆不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "车辆已删除"})
}
