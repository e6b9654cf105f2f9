package service

import (
	"context"
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ExamTemplateService 考核评分表的只读访问。评分表种子导入后不可变，
// 按车型缓存到 Redis，缓存未命中或 Redis 不可用时回源数据库。
type ExamTemplateService struct {
	TemplateRepo *repository.ExamTemplateRepository
	Redis        *redis.Client
}

func NewExamTemplateService(templateRepo *repository.ExamTemplateRepository, rdb *redis.Client) *ExamTemplateService {
	return &ExamTemplateService{TemplateRepo: templateRepo, Redis: rdb}
}

const templateCacheTTL = time.Hour

func templateCacheKey(licenseID uint) string {
	return fmt.Sprintf("exam_template:license:%d", licenseID)
}

func (s *ExamTemplateService) GetByLicense(licenseID uint) (*model.ExamTemplate, error) {
	ctx := context.Background()

	if s.Redis != nil {
		if data, err := s.Redis.Get(ctx, templateCacheKey(licenseID)).Bytes(); err == nil {
			var template model.ExamTemplate
			if json.Unmarshal(data, &template) == nil {
				return &template, nil
			}
		}
	}

	template, err := s.TemplateRepo.FindByLicenseID(licenseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(template); err == nil {
			s.Redis.Set(ctx, templateCacheKey(licenseID), data, templateCacheTTL)
		}
	}

	return template, nil
}

func (s *ExamTemplateService) GetByID(id uint) (*model.ExamTemplate, error) {
	template, err := s.TemplateRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTemplateNotFound
	}
	return template, err
}

func (s *ExamTemplateService) List() ([]model.ExamTemplate, error) {
	return s.TemplateRepo.List()
}
