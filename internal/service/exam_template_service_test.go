package service

import (
	"errors"
	"testing"

	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
)

// 扣分项乱序插入也要按 order_index 读出来，
// 评分明细的落库顺序和详情展示都依赖这个次序
func TestTemplateItemsFollowCatalogueOrder(t *testing.T) {
	db := newTestDB(t)

	license := model.License{Type: "B2", Description: "大型货车"}
	mustCreate(t, db, &license)
	template := model.ExamTemplate{LicenseID: license.ID, MaxPoints: 21}
	mustCreate(t, db, &template)

	third := model.TemplateItem{TemplateID: template.ID, Description: "未系安全带", PenaltyPoints: 21, OrderIndex: 3}
	mustCreate(t, db, &third)
	first := model.TemplateItem{TemplateID: template.ID, Description: "起步时车辆后溜超过30厘米", PenaltyPoints: 11, OrderIndex: 1}
	mustCreate(t, db, &first)
	second := model.TemplateItem{TemplateID: template.ID, Description: "通过限宽门碰擦标杆", PenaltyPoints: 5, OrderIndex: 2}
	mustCreate(t, db, &second)

	svc := NewExamTemplateService(repository.NewExamTemplateRepository(db), nil)
	got, err := svc.GetByLicense(license.ID)
	if err != nil {
		t.Fatalf("get by license: %v", err)
	}
	if got.MaxPoints != 21 {
		t.Fatalf("max points = %d, want 21", got.MaxPoints)
	}
	if len(got.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(got.Items))
	}
	for i, want := range []uint{first.ID, second.ID, third.ID} {
		if got.Items[i].ID != want {
			t.Fatalf("item %d = %d, want %d", i, got.Items[i].ID, want)
		}
	}
	if got.License == nil || got.License.Type != "B2" {
		t.Fatalf("license not preloaded: %+v", got.License)
	}
}

func TestTemplateLookupUnknownLicense(t *testing.T) {
	db := newTestDB(t)
	svc := NewExamTemplateService(repository.NewExamTemplateRepository(db), nil)

	if _, err := svc.GetByLicense(9999); !errors.Is(err, util.ErrTemplateNotFound) {
		t.Fatalf("get by license err = %v, want %v", err, util.ErrTemplateNotFound)
	}
	if _, err := svc.GetByID(9999); !errors.Is(err, util.ErrTemplateNotFound) {
		t.Fatalf("get by id err = %v, want %v", err, util.ErrTemplateNotFound)
	}
}
