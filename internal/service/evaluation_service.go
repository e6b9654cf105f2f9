package service

import (
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
	"driveflow_backend/pkg/monitoring"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// EvaluationService 驾驶课考核评分。教练按车型评分表记录学员失误，
// 服务端计算总扣分并判定合格与否，落库即定稿。
type EvaluationService struct {
	EvaluationRepo  *repository.EvaluationRepository
	AppointmentRepo *repository.AppointmentRepository
	EnrollmentRepo  *repository.EnrollmentRepository
	UserRepo        *repository.UserRepository
	TemplateSvc     *ExamTemplateService
}

func NewEvaluationService(
	evaluationRepo *repository.EvaluationRepository,
	appointmentRepo *repository.AppointmentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	userRepo *repository.UserRepository,
	templateSvc *ExamTemplateService,
) *EvaluationService {
	return &EvaluationService{
		EvaluationRepo:  evaluationRepo,
		AppointmentRepo: appointmentRepo,
		EnrollmentRepo:  enrollmentRepo,
		UserRepo:        userRepo,
		TemplateSvc:     templateSvc,
	}
}

type EvaluationMistakeReq struct {
	ItemID uint `json:"itemId" binding:"required"`
	Count  int  `json:"count" binding:"min=0"`
}

type SubmitEvaluationReq struct {
	Mistakes  []EvaluationMistakeReq `json:"mistakes"`
	MaxPoints int                    `json:"maxPoints" binding:"required,min=1"`
}

type EvaluationSummary struct {
	ID          uint                   `json:"id"`
	TotalPoints int                    `json:"totalPoints"`
	MaxPoints   int                    `json:"maxPoints"`
	Result      model.EvaluationResult `json:"result"`
}

type EvaluationItemDetail struct {
	ItemID        uint   `json:"itemId"`
	Description   string `json:"description"`
	PenaltyPoints int    `json:"penaltyPoints"`
	Count         int    `json:"count"`
	Subtotal      int    `json:"subtotal"`
}

type EvaluationDetail struct {
	ID             uint                   `json:"id"`
	AppointmentID  uint                   `json:"appointmentId"`
	LessonDate     time.Time              `json:"lessonDate"`
	StudentName    string                 `json:"studentName"`
	InstructorName string                 `json:"instructorName"`
	LicenseType    string                 `json:"licenseType"`
	Items          []EvaluationItemDetail `json:"items"`
	TotalPoints    int                    `json:"totalPoints"`
	MaxPoints      int                    `json:"maxPoints"`
	Result         model.EvaluationResult `json:"result"`
	CreatedAt      time.Time              `json:"createdAt"`
	FinalizedAt    *time.Time             `json:"finalizedAt,omitempty"`
}

type EvaluationHistoryPage struct {
	Page     int                               `json:"page"`
	PageSize int                               `json:"pageSize"`
	Total    int64                             `json:"total"`
	Items    []repository.EvaluationHistoryRow `json:"items"`
}

// lessonAccess 一次请求内解析完的课程关系快照，策略判断只读它，不再回库
type lessonAccess struct {
	appointment *model.Appointment
	enrollment  *model.Enrollment
}

func (a *lessonAccess) licenseID() uint {
	return a.enrollment.TeachingCategory.LicenseID
}

// canSubmitEvaluation 只有档案上指派的教练可以提交评分
func canSubmitEvaluation(claims *util.Claims, access *lessonAccess) bool {
	if claims.Role != model.Instructor {
		return false
	}
	return access.enrollment.InstructorID != nil && *access.enrollment.InstructorID == claims.UserID
}

// canViewEvaluation 指派教练、学员本人、该驾校的管理员可以查看，
// 其余角色一律拒绝
func canViewEvaluation(claims *util.Claims, access *lessonAccess) bool {
	switch claims.Role {
	case model.Instructor:
		return access.enrollment.InstructorID != nil && *access.enrollment.InstructorID == claims.UserID
	case model.Student:
		return access.enrollment.StudentID == claims.UserID
	case model.SchoolAdmin:
		return claims.SchoolID != nil && *claims.SchoolID == access.enrollment.SchoolID
	}
	return false
}

func (s *EvaluationService) resolveLessonAccess(appointmentID uint) (*lessonAccess, error) {
	appointment, err := s.AppointmentRepo.FindByID(appointmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if appointment.Enrollment == nil {
		return nil, util.ErrEnrollmentNotFound
	}
	if appointment.Enrollment.TeachingCategory == nil {
		return nil, util.ErrCategoryNotFound
	}
	return &lessonAccess{appointment: appointment, enrollment: appointment.Enrollment}, nil
}

// Submit 提交一节课的考核评分并定稿。
// 同一扣分项出现多条合并计数，0 次的条目丢弃；总扣分 = Σ 次数×扣分，
// 不超过评分表上限判合格。每节课至多一条记录，并发提交靠
// appointment_id 唯一索引兜底，冲突方收到已评分错误。
func (s *EvaluationService) Submit(claims *util.Claims, appointmentID uint, req SubmitEvaluationReq) (*EvaluationSummary, error) {
	access, err := s.resolveLessonAccess(appointmentID)
	if err != nil {
		return nil, err
	}

	if !canSubmitEvaluation(claims, access) {
		return nil, util.ErrPermissionDenied
	}

	// 先查一次给出友好错误，真正的防重是唯一索引
	exists, err := s.EvaluationRepo.ExistsByAppointmentID(appointmentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrEvaluationExists
	}

	template, err := s.TemplateSvc.GetByLicense(access.licenseID())
	if err != nil {
		return nil, err
	}

	// 客户端带上它渲染评分表时的上限值，与服务端不一致说明
	// 拿到的是过期或被篡改的评分表，整单拒绝
	if req.MaxPoints != template.MaxPoints {
		return nil, util.ErrMaxPointsMismatch
	}

	counts := make(map[uint]int)
	for _, m := range req.Mistakes {
		if m.Count < 0 {
			return nil, util.ErrNegativeMistakeCount
		}
		counts[m.ItemID] += m.Count
	}

	weights := make(map[uint]int, len(template.Items))
	for _, item := range template.Items {
		weights[item.ID] = item.PenaltyPoints
	}

	total := 0
	for itemID, count := range counts {
		weight, ok := weights[itemID]
		if !ok {
			return nil, util.ErrUnknownTemplateItem
		}
		total += weight * count
	}

	result := model.EvaluationOK
	if total > template.MaxPoints {
		result = model.EvaluationFailed
	}

	// 按评分表顺序持久化扣分明细
	normalized := make([]model.MistakeEntry, 0, len(counts))
	for _, item := range template.Items {
		if count := counts[item.ID]; count > 0 {
			normalized = append(normalized, model.MistakeEntry{ItemID: item.ID, Count: count})
		}
	}
	mistakesJSON, err := json.Marshal(normalized)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	evaluation := &model.Evaluation{
		AppointmentID: appointmentID,
		TemplateID:    template.ID,
		Mistakes:      datatypes.JSON(mistakesJSON),
		TotalPoints:   total,
		Result:        result,
		FinalizedAt:   &now,
	}

	if err := s.EvaluationRepo.Create(evaluation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrEvaluationExists
		}
		return nil, err
	}

	monitoring.EvaluationCounter.WithLabelValues(string(result)).Inc()

	return &EvaluationSummary{
		ID:          evaluation.ID,
		TotalPoints: total,
		MaxPoints:   template.MaxPoints,
		Result:      result,
	}, nil
}

// Get 查看评分详情，扣分明细按评分时引用的模板还原
func (s *EvaluationService) Get(claims *util.Claims, evaluationID uint) (*EvaluationDetail, error) {
	evaluation, err := s.EvaluationRepo.FindByID(evaluationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEvaluationNotFound
	}
	if err != nil {
		return nil, err
	}
	if evaluation.Appointment == nil || evaluation.Appointment.Enrollment == nil {
		return nil, util.ErrEvaluationNotFound
	}

	access := &lessonAccess{appointment: evaluation.Appointment, enrollment: evaluation.Appointment.Enrollment}
	if !canViewEvaluation(claims, access) {
		return nil, util.ErrPermissionDenied
	}

	template, err := s.TemplateSvc.GetByID(evaluation.TemplateID)
	if err != nil {
		return nil, err
	}

	var entries []model.MistakeEntry
	if len(evaluation.Mistakes) > 0 {
		if err := json.Unmarshal(evaluation.Mistakes, &entries); err != nil {
			return nil, err
		}
	}
	countByItem := make(map[uint]int, len(entries))
	for _, e := range entries {
		countByItem[e.ItemID] = e.Count
	}

	items := make([]EvaluationItemDetail, 0, len(entries))
	for _, item := range template.Items {
		if count := countByItem[item.ID]; count > 0 {
			items = append(items, EvaluationItemDetail{
				ItemID:        item.ID,
				Description:   item.Description,
				PenaltyPoints: item.PenaltyPoints,
				Count:         count,
				Subtotal:      item.PenaltyPoints * count,
			})
		}
	}

	detail := &EvaluationDetail{
		ID:            evaluation.ID,
		AppointmentID: evaluation.AppointmentID,
		LessonDate:    evaluation.Appointment.Date,
		Items:         items,
		TotalPoints:   evaluation.TotalPoints,
		MaxPoints:     template.MaxPoints,
		Result:        evaluation.Result,
		CreatedAt:     evaluation.CreatedAt,
		FinalizedAt:   evaluation.FinalizedAt,
	}
	if student := evaluation.Appointment.Enrollment.Student; student != nil {
		detail.StudentName = student.Name
	}
	if instructor := evaluation.Appointment.Enrollment.Instructor; instructor != nil {
		detail.InstructorName = instructor.Name
	}
	if template.License != nil {
		detail.LicenseType = template.License.Type
	}

	return detail, nil
}

// ListStudentHistory 按课程日期倒序分页返回学员的评分历史。
// total 是过滤后的完整条数，翻过末页返回空列表。
func (s *EvaluationService) ListStudentHistory(claims *util.Claims, studentID uint, from, to *time.Time, page, pageSize int) (*EvaluationHistoryPage, error) {
	if page < 1 || pageSize < 1 || pageSize > 100 {
		return nil, util.ErrInvalidPagination
	}

	student, err := s.UserRepo.FindByID(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	if err != nil {
		return nil, err
	}
	if student.Role != model.Student {
		return nil, util.ErrStudentNotFound
	}

	allowed, err := s.canViewHistory(claims, studentID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, util.ErrPermissionDenied
	}

	// 起止日期颠倒按空结果处理，不算错误
	if from != nil && to != nil && to.Before(*from) {
		return &EvaluationHistoryPage{Page: page, PageSize: pageSize, Items: []repository.EvaluationHistoryRow{}}, nil
	}

	var until *time.Time
	if to != nil {
		u := to.AddDate(0, 0, 1) // 截止日期含当天
		until = &u
	}

	rows, total, err := s.EvaluationRepo.ListByStudent(studentID, from, until, page, pageSize)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.EvaluationHistoryRow{}
	}

	return &EvaluationHistoryPage{Page: page, PageSize: pageSize, Total: total, Items: rows}, nil
}

func (s *EvaluationService) canViewHistory(claims *util.Claims, studentID uint) (bool, error) {
	switch claims.Role {
	case model.Student:
		return claims.UserID == studentID, nil
	case model.Instructor:
		return s.EnrollmentRepo.IsInstructorOfStudent(claims.UserID, studentID)
	case model.SchoolAdmin:
		if claims.SchoolID == nil {
			return false, nil
		}
		return s.EnrollmentRepo.IsStudentOfSchool(studentID, *claims.SchoolID)
	}
	return false, nil
}
