package controller

import (
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/service"
	"driveflow_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// EnrollmentController 学员报名档案管理
type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

// Create godoc
// @Summary 创建报名档案
// @Description 驾校管理员为学员办理报名，选定班型后档案进入学习中状态
// @Tags 报名管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateEnrollmentReq true "报名信息"
// @Success 201 {object} util.Response{data=model.Enrollment} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "学员或班型不存在"
// @Router /api/school/enrollments [post]
func (c *EnrollmentController) Create(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	var req service.CreateEnrollmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.Create(schoolID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCategoryNotFound):
			util.Error(ctx, 404, "班型不存在")
		case errors.Is(err, util.ErrStudentNotFound):
			util.Error(ctx, 404, "学员不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, enrollment)
}

// List godoc
// @Summary 获取本校报名列表
// @Tags 报名管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态过滤 active/finished/archived"
// @Param studentName query string false "按学员姓名搜索"
// @Param page query int false "页码，默认1" default(1)
// @Param limit query int false "每页数量，默认20" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Router /api/school/enrollments [get]
func (c *EnrollmentController) List(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	filter := repository.EnrollmentFilter{
		Status:      model.EnrollmentStatus(ctx.Query("status")),
		StudentName: ctx.Query("studentName"),
	}

	enrollments, total, err := c.EnrollmentService.ListBySchool(schoolID, filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  enrollments,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary 获取报名详情
// @Tags 报名管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "报名ID"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "报名不存在"
// @Router /api/school/enrollments/{id} [get]
func (c *EnrollmentController) Get(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "报名ID无效")
		return
	}

	enrollment, err := c.EnrollmentService.GetByID(uint(id), schoolID)
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
	util.Success(ctx, enrollment)
}

// Update godoc
// @Summary 更新报名档案
// @Description 更新状态、缴费进度或证件有效期
// @Tags 报名管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "报名ID"
// @Param body body service.UpdateEnrollmentReq true "要更新的字段"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "报名不存在"
// @Router /api/school/enrollments/{id} [put]
func (c *EnrollmentController) Update(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "报名ID无效")
		return
	}

	var req service.UpdateEnrollmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.Update(schoolID, uint(id), req)
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
	util.Success(ctx, enrollment)
}

// AssignStaffRequest 指派教练或车辆请求
// swagger:model AssignStaffRequest
type AssignStaffRequest struct {
	InstructorID uint `json:"instructorId"`
	VehicleID    uint `json:"vehicleId"`
}

// AssignInstructor godoc
// @Summary 为报名指派教练
// @Description 指派后该教练获得学员课程的评分权限
// @Tags 报名管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "报名ID"
// @Param body body AssignStaffRequest true "教练ID"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "报名或教练不存在"
// @Router /api/school/enrollments/{id}/instructor [post]
func (c *EnrollmentController) AssignInstructor(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "报名ID无效")
		return
	}

	var req AssignStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.InstructorID == 0 {
		util.BadRequest(ctx, "教练ID无效")
		return
	}

	enrollment, err := c.EnrollmentService.AssignInstructor(schoolID, uint(id), req.InstructorID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.Error(ctx, 404, "报名档案不存在")
		case errors.Is(err, util.ErrUserNotFound):
			util.Error(ctx, 404, "教练不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, enrollment)
}

// AssignVehicle godoc
// @Summary 为报名指派教练车
// @Tags 报名管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "报名ID"
// @Param body body AssignStaffRequest true "车辆ID"
// @Success 200 {object} util.Response{data=model.Enrollment} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "报名或车辆不存在"
// @Router /api/school/enrollments/{id}/vehicle [post]
func (c *EnrollmentController) AssignVehicle(ctx *gin.Context) {
	schoolID, ok := schoolIDFromClaims(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "报名ID无效")
		return
	}

	var req AssignStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.VehicleID == 0 {
		util.BadRequest(ctx, "车辆ID无效")
		return
	}

	enrollment, err := c.EnrollmentService.AssignVehicle(schoolID, uint(id), req.VehicleID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.Error(ctx, 404, "报名档案不存在")
		case errors.Is(err, util.ErrVehicleNotFound):
			util.Error(ctx, 404, "车辆不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, enrollment)
}

// ListMine godoc
// @Summary 获取我的报名档案
// @Description 学员看自己的报名，教练看名下带教的报名
// @Tags 报名管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/my/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var (
		enrollments []model.Enrollment
		err         error
	)
	switch claims.Role {
	case model.Instructor:
		enrollments, err = c.EnrollmentService.ListByInstructor(claims.UserID)
	default:
		enrollments, err = c.EnrollmentService.ListByStudent(claims.UserID)
	}
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"enrollments": enrollments})
}
