package controller

import (
	"driveflow_backend/internal/service"
	"driveflow_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// EvaluationController 处理驾驶课考核评分相关的API请求
type EvaluationController struct {
	EvaluationService *service.EvaluationService
}

func NewEvaluationController(evaluationService *service.EvaluationService) *EvaluationController {
	return &EvaluationController{EvaluationService: evaluationService}
}

// Submit godoc
// @Summary 提交课程考核评分
// @Description 教练在一节驾驶课结束后按评分表记录学员失误并定稿，每节课只能评一次
// @Tags 考核评分
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "课程预约ID"
// @Param body body service.SubmitEvaluationReq true "失误明细与评分表上限"
// @Success 201 {object} util.Response{data=service.EvaluationSummary} "评分已定稿"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "只有指派教练可以评分"
// @Failure 404 {object} util.Response "课程或评分表不存在"
// @Failure 409 {object} util.Response "该课程已有评分记录"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/appointments/{id}/evaluations [post]
func (c *EvaluationController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	appointmentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || appointmentID == 0 {
		util.BadRequest(ctx, "课程预约ID无效")
		return
	}

	var req service.SubmitEvaluationReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.EvaluationService.Submit(claims, uint(appointmentID), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAppointmentNotFound):
			util.Error(ctx, 404, "课程预约不存在")
		case errors.Is(err, util.ErrEnrollmentNotFound):
			util.Error(ctx, 404, "报名档案不存在")
		case errors.Is(err, util.ErrCategoryNotFound):
			util.Error(ctx, 404, "班型信息不存在")
		case errors.Is(err, util.ErrTemplateNotFound):
			util.Error(ctx, 404, "该准驾车型没有评分表")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrEvaluationExists):
			util.Conflict(ctx, "该课程已有评分记录")
		case errors.Is(err, util.ErrMaxPointsMismatch):
			util.BadRequest(ctx, "评分表上限不一致，请刷新评分表后重试")
		case errors.Is(err, util.ErrUnknownTemplateItem):
			util.BadRequest(ctx, "存在不属于该评分表的扣分项")
		case errors.Is(err, util.ErrNegativeMistakeCount):
			util.BadRequest(ctx, "失误次数不能为负数")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, summary)
}

// Get godoc
// @Summary 查看评分详情
// @Description 按评分时引用的评分表还原扣分明细，指派教练、学员本人和驾校管理员可见
// @Tags 考核评分
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "评分记录ID"
// @Success 200 {object} util.Response{data=service.EvaluationDetail} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "评分记录不存在"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/evaluations/{id} [get]
func (c *EvaluationController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	evaluationID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || evaluationID == 0 {
		util.BadRequest(ctx, "评分记录ID无效")
		return
	}

	detail, err := c.EvaluationService.Get(claims, uint(evaluationID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEvaluationNotFound), errors.Is(err, util.ErrTemplateNotFound):
			util.Error(ctx, 404, "评分记录不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

// ListStudentHistory godoc
// @Summary 查询学员评分历史
// @Description 按课程日期倒序分页返回某学员的全部评分记录，可按日期区间过滤
// @Tags 考核评分
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "学员ID"
// @Param from query string false "起始日期（含当天），格式YYYY-MM-DD"
// @Param to query string false "截止日期（含当天），格式YYYY-MM-DD"
// @Param page query int false "页码，默认1" default(1)
// @Param pageSize query int false "每页数量，默认20，最大100" default(20)
// @Success 200 {object} util.Response{data=service.EvaluationHistoryPage} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "学员不存在"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/students/{id}/evaluations [get]
func (c *EvaluationController) ListStudentHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || studentID == 0 {
		util.BadRequest(ctx, "学员ID无效")
		return
	}

	from, err := util.ParseDate(ctx.Query("from"))
	if err != nil {
		util.BadRequest(ctx, "起始日期格式无效，应为YYYY-MM-DD")
		return
	}
	to, err := util.ParseDate(ctx.Query("to"))
	if err != nil {
		util.BadRequest(ctx, "截止日期格式无效，应为YYYY-MM-DD")
		return
	}

	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		util.BadRequest(ctx, "分页参数无效")
		return
	}
	pageSize, err := strconv.Atoi(ctx.DefaultQuery("pageSize", "20"))
	if err != nil {
		util.BadRequest(ctx, "分页参数无效")
		return
	}

	history, err := c.EvaluationService.ListStudentHistory(claims, uint(studentID), from, to, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidPagination):
			util.BadRequest(ctx, "分页参数无效")
		case errors.Is(err, util.ErrStudentNotFound):
			util.Error(ctx, 404, "学员不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, history)
}
