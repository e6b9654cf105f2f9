package service

import (
	"errors"
	"testing"
	"time"

	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"

	"gorm.io/gorm"
)

func historyIDs(rows []repository.EvaluationHistoryRow) []uint {
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

// evaluateLessons 给学员补预约若干节课并逐一评分，返回评分记录ID，
// 下标和 dates 对齐
func evaluateLessons(t *testing.T, db *gorm.DB, f *lessonFixture, svc *EvaluationService, dates []time.Time, hours [][2]string, counts []int) []uint {
	t.Helper()

	lessons := []model.Appointment{f.appointment}
	for i := 1; i < len(dates); i++ {
		lessons = append(lessons, f.bookLesson(t, db, dates[i], hours[i][0], hours[i][1]))
	}

	instructor := claimsFor(&f.instructor)
	ids := make([]uint, len(lessons))
	for i, lesson := range lessons {
		req := SubmitEvaluationReq{MaxPoints: 21}
		if counts[i] > 0 {
			req.Mistakes = []EvaluationMistakeReq{{ItemID: f.items[0].ID, Count: counts[i]}}
		}
		summary, err := svc.Submit(instructor, lesson.ID, req)
		if err != nil {
			t.Fatalf("submit lesson %d: %v", i, err)
		}
		ids[i] = summary.ID
	}
	return ids
}

func TestStudentHistoryOrderingAndPaging(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	// 第一节课在 fixture 里已预约（3月2日），再补四节，其中两节同一天
	dates := []time.Time{
		f.appointment.Date,
		time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	}
	hours := [][2]string{
		{"09:00", "10:30"},
		{"09:00", "10:30"},
		{"09:00", "10:30"},
		{"14:00", "15:30"},
		{"09:00", "10:30"},
	}
	ids := evaluateLessons(t, db, f, svc, dates, hours, []int{1, 2, 3, 4, 8})

	student := claimsFor(&f.student)
	page1, err := svc.ListStudentHistory(student, f.student.ID, nil, nil, 1, 2)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if page1.Total != 5 {
		t.Fatalf("total = %d, want 5", page1.Total)
	}
	if page1.Page != 1 || page1.PageSize != 2 {
		t.Fatalf("page meta = %d/%d, want 1/2", page1.Page, page1.PageSize)
	}
	// 日期倒序，同一天按评分ID倒序
	want1 := []uint{ids[4], ids[3]}
	got1 := historyIDs(page1.Items)
	if len(got1) != 2 || got1[0] != want1[0] || got1[1] != want1[1] {
		t.Fatalf("page 1 ids = %v, want %v", got1, want1)
	}

	// 最后一节 8 次失误共 24 分，超过上限
	head := page1.Items[0]
	if head.TotalPoints != 24 || head.MaxPoints != 21 || head.Result != string(model.EvaluationFailed) {
		t.Fatalf("head row = %+v, want 24/21 FAILED", head)
	}
	if !head.Date.Equal(dates[4]) {
		t.Fatalf("head date = %v, want %v", head.Date, dates[4])
	}
	if head.FinalizedAt == nil {
		t.Fatal("head finalized_at missing")
	}

	page2, err := svc.ListStudentHistory(student, f.student.ID, nil, nil, 2, 2)
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	got2 := historyIDs(page2.Items)
	if len(got2) != 2 || got2[0] != ids[2] || got2[1] != ids[1] {
		t.Fatalf("page 2 ids = %v, want [%d %d]", got2, ids[2], ids[1])
	}

	page3, err := svc.ListStudentHistory(student, f.student.ID, nil, nil, 3, 2)
	if err != nil {
		t.Fatalf("page 3: %v", err)
	}
	got3 := historyIDs(page3.Items)
	if len(got3) != 1 || got3[0] != ids[0] {
		t.Fatalf("page 3 ids = %v, want [%d]", got3, ids[0])
	}

	// 翻过末页返回空列表，total 不变
	page4, err := svc.ListStudentHistory(student, f.student.ID, nil, nil, 4, 2)
	if err != nil {
		t.Fatalf("page 4: %v", err)
	}
	if len(page4.Items) != 0 || page4.Total != 5 {
		t.Fatalf("page 4 = %d items total %d, want 0 items total 5", len(page4.Items), page4.Total)
	}
}

func TestStudentHistoryDateRange(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	dates := []time.Time{
		f.appointment.Date, // 3月2日
		time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
	}
	hours := [][2]string{
		{"09:00", "10:30"},
		{"09:00", "10:30"},
		{"09:00", "10:30"},
		{"09:00", "10:30"},
	}
	ids := evaluateLessons(t, db, f, svc, dates, hours, []int{1, 1, 1, 1})

	student := claimsFor(&f.student)

	// 起止都含当天
	from := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	page, err := svc.ListStudentHistory(student, f.student.ID, &from, &to, 1, 20)
	if err != nil {
		t.Fatalf("range query: %v", err)
	}
	got := historyIDs(page.Items)
	if page.Total != 2 || len(got) != 2 || got[0] != ids[2] || got[1] != ids[1] {
		t.Fatalf("range rows = %v total %d, want [%d %d] total 2", got, page.Total, ids[2], ids[1])
	}

	// 只给下界
	page, err = svc.ListStudentHistory(student, f.student.ID, &to, nil, 1, 20)
	if err != nil {
		t.Fatalf("from only: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("from only total = %d, want 2", page.Total)
	}

	// 只给上界
	page, err = svc.ListStudentHistory(student, f.student.ID, nil, &from, 1, 20)
	if err != nil {
		t.Fatalf("to only: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("to only total = %d, want 2", page.Total)
	}

	// 起止颠倒不算错误，按空结果返回
	page, err = svc.ListStudentHistory(student, f.student.ID, &to, &from, 1, 20)
	if err != nil {
		t.Fatalf("reversed range: %v", err)
	}
	if page.Total != 0 || len(page.Items) != 0 {
		t.Fatalf("reversed range = %d items total %d, want empty", len(page.Items), page.Total)
	}
}

func TestStudentHistoryPaginationBounds(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)
	student := claimsFor(&f.student)

	cases := []struct {
		name     string
		page     int
		pageSize int
	}{
		{"zero page", 0, 20},
		{"zero page size", 1, 0},
		{"page size over limit", 1, 101},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ListStudentHistory(student, f.student.ID, nil, nil, tc.page, tc.pageSize); !errors.Is(err, util.ErrInvalidPagination) {
				t.Fatalf("err = %v, want %v", err, util.ErrInvalidPagination)
			}
		})
	}

	if _, err := svc.ListStudentHistory(student, f.student.ID, nil, nil, 1, 100); err != nil {
		t.Fatalf("page size 100 should be accepted: %v", err)
	}
}

func TestStudentHistoryTargetMustBeStudent(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	// 目标是教练账号
	if _, err := svc.ListStudentHistory(claimsFor(&f.instructor), f.instructor.ID, nil, nil, 1, 20); !errors.Is(err, util.ErrStudentNotFound) {
		t.Fatalf("instructor target err = %v, want %v", err, util.ErrStudentNotFound)
	}

	// 目标不存在
	if _, err := svc.ListStudentHistory(claimsFor(&f.instructor), 9999, nil, nil, 1, 20); !errors.Is(err, util.ErrStudentNotFound) {
		t.Fatalf("missing target err = %v, want %v", err, util.ErrStudentNotFound)
	}
}

func TestStudentHistoryAccessPolicy(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	otherSchool := model.School{Name: "西城驾校", Email: "xicheng@example.com"}
	mustCreate(t, db, &otherSchool)
	schoolAdmin := model.User{Name: "东城管理员", Email: "dc@example.com", Password: "x", Role: model.SchoolAdmin, SchoolID: &f.school.ID}
	mustCreate(t, db, &schoolAdmin)
	otherAdmin := model.User{Name: "西城管理员", Email: "xc@example.com", Password: "x", Role: model.SchoolAdmin, SchoolID: &otherSchool.ID}
	mustCreate(t, db, &otherAdmin)
	otherStudent := model.User{Name: "张伟", Email: "zhangwei@example.com", Password: "x", Role: model.Student}
	mustCreate(t, db, &otherStudent)
	otherInstructor := model.User{Name: "孙师傅", Email: "sun@example.com", Password: "x", Role: model.Instructor, SchoolID: &f.school.ID}
	mustCreate(t, db, &otherInstructor)
	superAdmin := model.User{Name: "平台管理员", Email: "root@example.com", Password: "x", Role: model.SuperAdmin}
	mustCreate(t, db, &superAdmin)

	allowed := []struct {
		name   string
		claims *util.Claims
	}{
		{"student himself", claimsFor(&f.student)},
		{"assigned instructor", claimsFor(&f.instructor)},
		{"school admin of the school", claimsFor(&schoolAdmin)},
	}
	for _, tc := range allowed {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ListStudentHistory(tc.claims, f.student.ID, nil, nil, 1, 20); err != nil {
				t.Fatalf("list: %v", err)
			}
		})
	}

	denied := []struct {
		name   string
		claims *util.Claims
	}{
		{"another student", claimsFor(&otherStudent)},
		{"unrelated instructor", claimsFor(&otherInstructor)},
		{"admin of another school", claimsFor(&otherAdmin)},
		{"super admin", claimsFor(&superAdmin)},
	}
	for _, tc := range denied {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ListStudentHistory(tc.claims, f.student.ID, nil, nil, 1, 20); !errors.Is(err, util.ErrPermissionDenied) {
				t.Fatalf("err = %v, want %v", err, util.ErrPermissionDenied)
			}
		})
	}
}
