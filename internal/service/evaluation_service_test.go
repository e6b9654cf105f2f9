package service

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"driveflow_backend/internal/model"
	"driveflow_backend/internal/util"
)

func TestSubmitEvaluationScoresLesson(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	req := SubmitEvaluationReq{
		MaxPoints: 21,
		Mistakes: []EvaluationMistakeReq{
			{ItemID: f.items[0].ID, Count: 2},
			{ItemID: f.items[1].ID, Count: 1},
		},
	}
	summary, err := svc.Submit(claimsFor(&f.instructor), f.appointment.ID, req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if summary.TotalPoints != 11 {
		t.Fatalf("total points = %d, want 11", summary.TotalPoints)
	}
	if summary.MaxPoints != 21 {
		t.Fatalf("max points = %d, want 21", summary.MaxPoints)
	}
	if summary.Result != model.EvaluationOK {
		t.Fatalf("result = %s, want %s", summary.Result, model.EvaluationOK)
	}

	var stored model.Evaluation
	if err := db.First(&stored, summary.ID).Error; err != nil {
		t.Fatalf("load stored evaluation: %v", err)
	}
	if stored.AppointmentID != f.appointment.ID {
		t.Fatalf("appointment id = %d, want %d", stored.AppointmentID, f.appointment.ID)
	}
	if stored.TemplateID != f.template.ID {
		t.Fatalf("template id = %d, want %d", stored.TemplateID, f.template.ID)
	}
	if stored.FinalizedAt == nil {
		t.Fatal("finalized_at not set on insert")
	}
}

func TestSubmitEvaluationFailsOverLimit(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	req := SubmitEvaluationReq{
		MaxPoints: 21,
		Mistakes:  []EvaluationMistakeReq{{ItemID: f.items[1].ID, Count: 5}},
	}
	summary, err := svc.Submit(claimsFor(&f.instructor), f.appointment.ID, req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if summary.TotalPoints != 25 {
		t.Fatalf("total points = %d, want 25", summary.TotalPoints)
	}
	if summary.Result != model.EvaluationFailed {
		t.Fatalf("result = %s, want %s", summary.Result, model.EvaluationFailed)
	}
}

func TestSubmitEvaluationPerfectLesson(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	summary, err := svc.Submit(claimsFor(&f.instructor), f.appointment.ID, SubmitEvaluationReq{MaxPoints: 21})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if summary.TotalPoints != 0 || summary.Result != model.EvaluationOK {
		t.Fatalf("summary = %+v, want zero points and OK", summary)
	}

	var stored model.Evaluation
	if err := db.First(&stored, summary.ID).Error; err != nil {
		t.Fatalf("load stored evaluation: %v", err)
	}
	var entries []model.MistakeEntry
	if err := json.Unmarshal(stored.Mistakes, &entries); err != nil {
		t.Fatalf("unmarshal mistakes: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("mistakes = %#v, want empty", entries)
	}
}

// 同一扣分项出现多条要合并计数，0 次的条目不落库，落库顺序跟评分表一致
func TestSubmitEvaluationMergesRepeatedItems(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	req := SubmitEvaluationReq{
		MaxPoints: 21,
		Mistakes: []EvaluationMistakeReq{
			{ItemID: f.items[1].ID, Count: 1},
			{ItemID: f.items[0].ID, Count: 1},
			{ItemID: f.items[1].ID, Count: 1},
			{ItemID: f.items[2].ID, Count: 0},
		},
	}
	summary, err := svc.Submit(claimsFor(&f.instructor), f.appointment.ID, req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if summary.TotalPoints != 13 {
		t.Fatalf("total points = %d, want 13", summary.TotalPoints)
	}

	var stored model.Evaluation
	if err := db.First(&stored, summary.ID).Error; err != nil {
		t.Fatalf("load stored evaluation: %v", err)
	}
	var entries []model.MistakeEntry
	if err := json.Unmarshal(stored.Mistakes, &entries); err != nil {
		t.Fatalf("unmarshal mistakes: %v", err)
	}
	want := []model.MistakeEntry{
		{ItemID: f.items[0].ID, Count: 1},
		{ItemID: f.items[1].ID, Count: 2},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("mistakes = %#v, want %#v", entries, want)
	}
}

func TestSubmitEvaluationRejectsBadRequests(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)
	claims := claimsFor(&f.instructor)

	cases := []struct {
		name string
		req  SubmitEvaluationReq
		want error
	}{
		{
			name: "max points mismatch",
			req:  SubmitEvaluationReq{MaxPoints: 100},
			want: util.ErrMaxPointsMismatch,
		},
		{
			name: "unknown item",
			req:  SubmitEvaluationReq{MaxPoints: 21, Mistakes: []EvaluationMistakeReq{{ItemID: 9999, Count: 1}}},
			want: util.ErrUnknownTemplateItem,
		},
		{
			name: "negative count",
			req:  SubmitEvaluationReq{MaxPoints: 21, Mistakes: []EvaluationMistakeReq{{ItemID: f.items[0].ID, Count: -1}}},
			want: util.ErrNegativeMistakeCount,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(claims, f.appointment.ID, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	var count int64
	if err := db.Model(&model.Evaluation{}).Count(&count).Error; err != nil {
		t.Fatalf("count evaluations: %v", err)
	}
	if count != 0 {
		t.Fatalf("evaluations persisted = %d, want 0", count)
	}
}

func TestSubmitEvaluationAppointmentNotFound(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	_, err := svc.Submit(claimsFor(&f.instructor), f.appointment.ID+999, SubmitEvaluationReq{MaxPoints: 21})
	if !errors.Is(err, util.ErrAppointmentNotFound) {
		t.Fatalf("err = %v, want %v", err, util.ErrAppointmentNotFound)
	}
}

func TestSubmitEvaluationOnlyAssignedInstructor(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	otherInstructor := model.User{Name: "赵师傅", Email: "zhao@example.com", Password: "x", Role: model.Instructor, SchoolID: &f.school.ID}
	mustCreate(t, db, &otherInstructor)
	schoolAdmin := model.User{Name: "校区管理员", Email: "dcadmin@example.com", Password: "x", Role: model.SchoolAdmin, SchoolID: &f.school.ID}
	mustCreate(t, db, &schoolAdmin)
	superAdmin := model.User{Name: "平台管理员", Email: "root@example.com", Password: "x", Role: model.SuperAdmin}
	mustCreate(t, db, &superAdmin)

	req := SubmitEvaluationReq{MaxPoints: 21}
	cases := []struct {
		name   string
		claims *util.Claims
	}{
		{"student", claimsFor(&f.student)},
		{"another instructor", claimsFor(&otherInstructor)},
		{"school admin", claimsFor(&schoolAdmin)},
		{"super admin", claimsFor(&superAdmin)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Submit(tc.claims, f.appointment.ID, req); !errors.Is(err, util.ErrPermissionDenied) {
				t.Fatalf("err = %v, want %v", err, util.ErrPermissionDenied)
			}
		})
	}

	// 档案还没指派教练时谁都不能评
	unassigned := model.Enrollment{SchoolID: f.school.ID, StudentID: f.student.ID, TeachingCategoryID: f.category.ID, Status: model.EnrollmentActive}
	mustCreate(t, db, &unassigned)
	lesson := model.Appointment{EnrollmentID: unassigned.ID, Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), StartHour: "09:00", EndHour: "10:30"}
	mustCreate(t, db, &lesson)
	if _, err := svc.Submit(claimsFor(&f.instructor), lesson.ID, req); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("unassigned enrollment err = %v, want %v", err, util.ErrPermissionDenied)
	}
}

func TestSubmitEvaluationOncePerLesson(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)
	claims := claimsFor(&f.instructor)

	req := SubmitEvaluationReq{MaxPoints: 21, Mistakes: []EvaluationMistakeReq{{ItemID: f.items[0].ID, Count: 1}}}
	if _, err := svc.Submit(claims, f.appointment.ID, req); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.Submit(claims, f.appointment.ID, req); !errors.Is(err, util.ErrEvaluationExists) {
		t.Fatalf("second submit err = %v, want %v", err, util.ErrEvaluationExists)
	}

	var count int64
	if err := db.Model(&model.Evaluation{}).Count(&count).Error; err != nil {
		t.Fatalf("count evaluations: %v", err)
	}
	if count != 1 {
		t.Fatalf("evaluations = %d, want 1", count)
	}
}

func TestGetEvaluationDetail(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	req := SubmitEvaluationReq{
		MaxPoints: 21,
		Mistakes: []EvaluationMistakeReq{
			{ItemID: f.items[0].ID, Count: 2},
			{ItemID: f.items[1].ID, Count: 1},
		},
	}
	summary, err := svc.Submit(claimsFor(&f.instructor), f.appointment.ID, req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	detail, err := svc.Get(claimsFor(&f.student), summary.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.AppointmentID != f.appointment.ID {
		t.Fatalf("appointment id = %d, want %d", detail.AppointmentID, f.appointment.ID)
	}
	if !detail.LessonDate.Equal(f.appointment.Date) {
		t.Fatalf("lesson date = %v, want %v", detail.LessonDate, f.appointment.Date)
	}
	if detail.StudentName != "李明" || detail.InstructorName != "王建国" {
		t.Fatalf("names = %q/%q, want 李明/王建国", detail.StudentName, detail.InstructorName)
	}
	if detail.LicenseType != "C1" {
		t.Fatalf("license type = %q, want C1", detail.LicenseType)
	}
	if detail.TotalPoints != 11 || detail.MaxPoints != 21 || detail.Result != model.EvaluationOK {
		t.Fatalf("score = %d/%d %s, want 11/21 OK", detail.TotalPoints, detail.MaxPoints, detail.Result)
	}
	if detail.FinalizedAt == nil {
		t.Fatal("finalized_at missing in detail")
	}

	if len(detail.Items) != 2 {
		t.Fatalf("items = %#v, want 2 entries", detail.Items)
	}
	first := detail.Items[0]
	if first.ItemID != f.items[0].ID || first.Count != 2 || first.PenaltyPoints != 3 || first.Subtotal != 6 {
		t.Fatalf("first item = %+v, want item %d count 2 subtotal 6", first, f.items[0].ID)
	}
	second := detail.Items[1]
	if second.ItemID != f.items[1].ID || second.Count != 1 || second.Subtotal != 5 {
		t.Fatalf("second item = %+v, want item %d count 1 subtotal 5", second, f.items[1].ID)
	}
}

func TestGetEvaluationViewPolicy(t *testing.T) {
	db := newTestDB(t)
	f := newLessonFixture(t, db)
	svc := newTestEvaluationService(db)

	summary, err := svc.Submit(claimsFor(&f.instructor), f.appointment.ID, SubmitEvaluationReq{MaxPoints: 21})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

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
		{"assigned instructor", claimsFor(&f.instructor)},
		{"student himself", claimsFor(&f.student)},
		{"school admin of the school", claimsFor(&schoolAdmin)},
	}
	for _, tc := range allowed {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Get(tc.claims, summary.ID); err != nil {
				t.Fatalf("get: %v", err)
			}
		})
	}

	denied := []struct {
		name   string
		claims *util.Claims
	}{
		{"another student", claimsFor(&otherStudent)},
		{"another instructor", claimsFor(&otherInstructor)},
		{"admin of another school", claimsFor(&otherAdmin)},
		{"super admin", claimsFor(&superAdmin)},
	}
	for _, tc := range denied {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Get(tc.claims, summary.ID); !errors.Is(err, util.ErrPermissionDenied) {
				t.Fatalf("err = %v, want %v", err, util.ErrPermissionDenied)
			}
		})
	}

	if _, err := svc.Get(claimsFor(&f.instructor), summary.ID+999); !errors.Is(err, util.ErrEvaluationNotFound) {
		t.Fatalf("missing id err = %v, want %v", err, util.ErrEvaluationNotFound)
	}
}
