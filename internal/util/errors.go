package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrAccountDisabled  = errors.New("账号已被禁用")
	ErrPermissionDenied = errors.New("permission denied")

	ErrSchoolNotFound      = errors.New("school not found")
	ErrLicenseNotFound     = errors.New("license not found")
	ErrLicenseRegistered   = errors.New("license type already exists")
	ErrStudentNotFound     = errors.New("student not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrPlateRegistered     = errors.New("license plate already registered")
	ErrCategoryNotFound    = errors.New("teaching category not found")
	ErrCategoryInUse       = errors.New("teaching category has enrollments")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrEnrollmentNotActive = errors.New("enrollment is not active")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrTimeSlotTaken       = errors.New("instructor already booked in this time slot")
	ErrDocumentNotFound    = errors.New("document not found")

	ErrTemplateNotFound     = errors.New("no exam template for license")
	ErrEvaluationNotFound   = errors.New("evaluation not found")
	ErrEvaluationExists     = errors.New("appointment already evaluated")
	ErrAppointmentEvaluated = errors.New("appointment has a finalized evaluation")
	ErrUnknownTemplateItem  = errors.New("mistake item does not belong to the exam template")
	ErrNegativeMistakeCount = errors.New("mistake count cannot be negative")
	ErrMaxPointsMismatch    = errors.New("max points does not match the exam template")
	ErrInvalidPagination    = errors.New("invalid pagination parameters")
	ErrInvalidDateRange     = errors.New("invalid date range")
)
