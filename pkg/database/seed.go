package database

import (
	"driveflow_backend/internal/model"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedTemplate struct {
	MaxPoints int
	Items     []model.TemplateItem
}

// 各准驾车型的考核评分表。扣分项乘以次数累计，超过 MaxPoints 即不合格。
var seedCatalogue = map[string]struct {
	Description string
	Template    seedTemplate
}{
	"C1": {
		Description: "小型手动挡汽车",
		Template: seedTemplate{
			MaxPoints: 21,
			Items: []model.TemplateItem{
				{Description: "起步时车辆后溜", PenaltyPoints: 3, OrderIndex: 1},
				{Description: "起步、转向、变更车道前未打转向灯", PenaltyPoints: 3, OrderIndex: 2},
				{Description: "变更车道前未通过后视镜观察", PenaltyPoints: 5, OrderIndex: 3},
				{Description: "通过路口未减速慢行", PenaltyPoints: 5, OrderIndex: 4},
				{Description: "行驶中发动机熄火", PenaltyPoints: 3, OrderIndex: 5},
				{Description: "换挡时低头看挡", PenaltyPoints: 3, OrderIndex: 6},
				{Description: "靠边停车车身距路缘石超过30厘米", PenaltyPoints: 3, OrderIndex: 7},
				{Description: "不主动避让行人、非机动车", PenaltyPoints: 11, OrderIndex: 8},
				{Description: "未系安全带", PenaltyPoints: 21, OrderIndex: 9},
			},
		},
	},
	"C2": {
		Description: "小型自动挡汽车",
		Template: seedTemplate{
			MaxPoints: 21,
			Items: []model.TemplateItem{
				{Description: "起步时车辆后溜", PenaltyPoints: 3, OrderIndex: 1},
				{Description: "起步、转向、变更车道前未打转向灯", PenaltyPoints: 3, OrderIndex: 2},
				{Description: "变更车道前未通过后视镜观察", PenaltyPoints: 5, OrderIndex: 3},
				{Description: "通过路口未减速慢行", PenaltyPoints: 5, OrderIndex: 4},
				{Description: "靠边停车车身距路缘石超过30厘米", PenaltyPoints: 3, OrderIndex: 5},
				{Description: "不主动避让行人、非机动车", PenaltyPoints: 11, OrderIndex: 6},
				{Description: "未系安全带", PenaltyPoints: 21, OrderIndex: 7},
			},
		},
	},
	"B2": {
		Description: "大型货车",
		Template: seedTemplate{
			MaxPoints: 21,
			Items: []model.TemplateItem{
				{Description: "起步时车辆后溜超过30厘米", PenaltyPoints: 11, OrderIndex: 1},
				{Description: "起步、转向、变更车道前未打转向灯", PenaltyPoints: 3, OrderIndex: 2},
				{Description: "通过限宽门碰擦标杆", PenaltyPoints: 5, OrderIndex: 3},
				{Description: "上坡起步时间超过规定", PenaltyPoints: 5, OrderIndex: 4},
				{Description: "行驶中发动机熄火", PenaltyPoints: 3, OrderIndex: 5},
				{Description: "不主动避让行人、非机动车", PenaltyPoints: 11, OrderIndex: 6},
				{Description: "未系安全带", PenaltyPoints: 21, OrderIndex: 7},
			},
		},
	},
}

// SeedReferenceData 导入准驾车型目录与考核评分表。按车型逐一检查，
// 已存在的不再写入，可重复执行。
func SeedReferenceData(db *gorm.DB) error {
	for licenseType, entry := range seedCatalogue {
		err := db.Transaction(func(tx *gorm.DB) error {
			var license model.License
			err := tx.Where("type = ?", licenseType).First(&license).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				license = model.License{Type: licenseType, Description: entry.Description}
				if err := tx.Create(&license).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}

			var count int64
			if err := tx.Model(&model.ExamTemplate{}).Where("license_id = ?", license.ID).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}

			template := model.ExamTemplate{
				LicenseID: license.ID,
				MaxPoints: entry.Template.MaxPoints,
			}
			if err := tx.Create(&template).Error; err != nil {
				return err
			}
			for i := range entry.Template.Items {
				item := entry.Template.Items[i]
				item.TemplateID = template.ID
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
			log.Printf("Seeded exam template for license %s (%d items)", licenseType, len(entry.Template.Items))
			return nil
		})
		if err != nil {
			return err
		}
	}

	return seedDefaultAdmin(db)
}

// 首次部署时创建平台管理员，密码需要登录后立即修改
func seedDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.SuperAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("driveflow123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.User{
		Name:     "平台管理员",
		Email:    "admin@driveflow.cn",
		Password: string(hashed),
		Role:     model.SuperAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Seeded default super admin account admin@driveflow.cn, please change the password")
	return nil
}
