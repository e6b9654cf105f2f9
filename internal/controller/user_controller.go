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

// UserController 处理用户管理相关的HTTP请求
type UserController struct {
	UserService *service.UserService
}

// NewUserController 创建一个新的用户控制器实例
func NewUserController(userService *service.UserService) *UserController {
	return &UserController{
		UserService: userService,
	}
}

// ListUsers godoc
// @Summary 获取用户列表
// @Description 平台管理员按角色、驾校、关键词分页查询用户
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param role query string false "角色过滤 student/instructor/school_admin/super_admin"
// @Param schoolId query int false "驾校ID过滤"
// @Param search query string false "按姓名或邮箱搜索"
// @Param page query int false "页码，默认1" default(1)
// @Param limit query int false "每页数量，默认20" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := repository.UserFilter{
		Role:   model.UserRole(ctx.Query("role")),
		Search: ctx.Query("search"),
	}
	if schoolIDStr := ctx.Query("schoolId"); schoolIDStr != "" {
		schoolID, err := strconv.ParseUint(schoolIDStr, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "驾校ID无效")
			return
		}
		id := uint(schoolID)
		filter.SchoolID = &id
	}

	users, total, err := c.UserService.GetUsers(page, limit, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetUser godoc
// @Summary 获取用户详情
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "用户ID无效")
		return
	}

	user, err := c.UserService.GetUserByID(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.Error(ctx, 404, "用户不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// ResetPassword godoc
// @Summary 重置用户密码
// @Description 生成临时密码并返回，用户下次登录后应尽快修改
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id}/reset-password [post]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "用户ID无效")
		return
	}

	tempPassword, err := c.UserService.ResetPassword(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.Error(ctx, 404, "用户不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"tempPassword": tempPassword})
}

// DisableUserRequest 禁用或解禁请求
// swagger:model DisableUserRequest
type DisableUserRequest struct {
	Disabled bool `json:"disabled"`
}

// DisableUser godoc
// @Summary 禁用或解禁用户
// @Description 被禁用的账号无法登录，已签发的令牌到期自然失效
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "用户ID"
// @Param body body DisableUserRequest true "禁用状态"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id}/disable [post]
func (c *UserController) DisableUser(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "用户ID无效")
		return
	}

	var req DisableUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.DisableUser(uint(id), req.Disabled); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.Error(ctx, 404, "用户不存在")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"message": "操作成功"})
}

// CreateInstructor godoc
// @Summary 创建教练账号
// @Description 驾校管理员为本校开通教练账号
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateStaffReq true "教练账号信息"
// @Success 201 {object} util.Response{data=model.User} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/school/instructors [post]
func (c *UserController) CreateInstructor(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.SchoolID == nil {
		util.Forbidden(ctx)
		return
	}

	var req service.CreateStaffReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.CreateInstructor(*claims.SchoolID, req)
	if err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "该邮箱已被注册")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// ListInstructors godoc
// @Summary 获取本校教练列表
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.User} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Router /api/school/instructors [get]
func (c *UserController) ListInstructors(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil || claims.SchoolID == nil {
		util.Forbidden(ctx)
		return
	}

	instructors, err := c.UserService.ListSchoolStaff(*claims.SchoolID, model.Instructor)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"instructors": instructors})
}

// CreateSchoolAdmin godoc
// @Summary 创建驾校管理员账号
// @Description 平台管理员为指定驾校开通管理员账号
// @Tags 用户管理
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "驾校ID"
// @Param body body service.CreateStaffReq true "管理员账号信息"
// @Success 201 {object} util.Response{data=model.User} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "驾校不存在"
// @Failure 409 {object} util.Response "邮箱已被注册"
// @Router /api/admin/schools/{id}/admins [post]
func (c *UserController) CreateSchoolAdmin(ctx *gin.Context) {
	schoolID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || schoolID == 0 {
		util.BadRequest(ctx, "驾校ID无效")
		return
	}

	var req service.CreateStaffReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.CreateSchoolAdmin(uint(schoolID), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSchoolNotFound):
			util.Error(ctx, 404, "驾校不存在")
		case errors.Is(err, util.ErrEmailRegistered):
			util.Error(ctx, 409, "该邮箱已被注册")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, user)
}
