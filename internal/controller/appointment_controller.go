package controller

import (
	"driveflow_backend/internal/service"
	"driveflow_backend/internal/util"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// AppointmentController 驾驶课预约管理
type AppointmentController struct {
	AppointmentService *service.AppointmentService
}

func NewAppointmentController(appointmentService *service.AppointmentService) *AppointmentController {
	return &AppointmentController{AppointmentService: appointmentService}
}

// Create godoc
// @Summary 预约驾驶课
// @Description 指派教练或驾校管理员为学习中的报名档案排课，教练同时段不能重复排课
// @Tags 课程预约
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateAppointmentReq true "排课信息"
// @Success 201 {object} util.Response{data=model.Appointment} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "报名档案不存在"
// @Failure 409 {object} util.Response "时段冲突或档案不在学习中"
// @Router /api/appointments [post]
func (c *AppointmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateAppointmentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	appointment, err := c.AppointmentService.Create(claims, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidDateRange):
			util.BadRequest(ctx, "上课时段无效，开始时间必须早于结束时间")
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.Error(ctx, 404, "报名档案不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrEnrollmentNotActive):
			util.Conflict(ctx, "报名档案不在学习中状态")
		case errors.Is(err, util.ErrTimeSlotTaken):
			util.Conflict(ctx, "教练该时段已有课程")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, appointment)
}

// Get godoc
// @Summary 获取课程预约详情
// @Tags 课程预约
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程预约ID"
// @Success 200 {object} util.Response{data=model.Appointment} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "课程预约不存在"
// @Router /api/appointments/{id} [get]
func (c *AppointmentController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "课程预约ID无效")
		return
	}

	appointment, err := c.AppointmentService.GetByID(claims, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAppointmentNotFound):
			util.Error(ctx, 404, "课程预约不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, appointment)
}

// Cancel godoc
// @Summary 取消课程预约
// @Description 已评分定稿的课程不能取消
// @Tags 课程预约
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程预约ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "课程预约不存在"
// @Failure 409 {object} util.Response "课程已有评分记录"
// @Router /api/appointments/{id} [delete]
func (c *AppointmentController) Cancel(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "课程预约ID无效")
		return
	}

	if err := c.AppointmentService.Cancel(claims, uint(id)); err != nil {
		switch {
		case errors.Is(err, util.ErrAppointmentNotFound):
			util.Error(ctx, 404, "课程预约不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrAppointmentEvaluated):
			util.Conflict(ctx, "课程已有评分记录，不能取消")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "课程已取消"})
}

// ListByEnrollment godoc
// @Summary 获取报名档案的课程列表
// @Tags 课程预约
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "报名ID"
// @Success 200 {object} util.Response{data=[]model.Appointment} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "报名档案不存在"
// @Router /api/enrollments/{id}/appointments [get]
func (c *AppointmentController) ListByEnrollment(ctx *gin.Context) {
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

	appointments, err := c.AppointmentService.ListByEnrollment(claims, uint(enrollmentID))
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
	util.Success(ctx, gin.H{"appointments": appointments})
}

// MySchedule godoc
// @Summary 获取教练某天的课表
// @Tags 课程预约
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date query string false "日期，格式YYYY-MM-DD，默认今天"
// @Success 200 {object} util.Response{data=[]model.Appointment} "成功"
// @Failure 400 {object} util.Response "日期格式无效"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/my/schedule [get]
func (c *AppointmentController) MySchedule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	date := time.Now()
	if dateStr := ctx.Query("date"); dateStr != "" {
		parsed, err := util.ParseDate(dateStr)
		if err != nil {
			util.BadRequest(ctx, "日期格式无效，应为YYYY-MM-DD")
			return
		}
		date = *parsed
	}

	appointments, err := c.AppointmentService.ListInstructorDay(claims.UserID, date)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"appointments": appointments})
}
