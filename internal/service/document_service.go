package service

import (
	"context"
	"driveflow_backend/internal/model"
	"driveflow_backend/internal/repository"
	"driveflow_backend/internal/util"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"gorm.io/gorm"
)

type DocumentService struct {
	DocumentRepo   *repository.DocumentRepository
	EnrollmentRepo *repository.EnrollmentRepository
	Storage        *StorageService
}

func NewDocumentService(
	documentRepo *repository.DocumentRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	storage *StorageService,
) *DocumentService {
	return &DocumentService{
		DocumentRepo:   documentRepo,
		EnrollmentRepo: enrollmentRepo,
		Storage:        storage,
	}
}

const maxDocumentSize = 20 << 20 // 20MB

func (s *DocumentService) checkEnrollment(schoolID, enrollmentID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByID(enrollmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if enrollment.SchoolID != schoolID {
		return nil, util.ErrPermissionDenied
	}
	return enrollment, nil
}

// Upload 上传报名档案附件，只收 PDF 和图片扫描件
func (s *DocumentService) Upload(ctx context.Context, claims *util.Claims, enrollmentID uint, kind model.DocumentKind, fileHeader *multipart.FileHeader) (*model.Document, error) {
	if claims.SchoolID == nil {
		return nil, util.ErrPermissionDenied
	}
	if _, err := s.checkEnrollment(*claims.SchoolID, enrollmentID); err != nil {
		return nil, err
	}

	if fileHeader.Size > maxDocumentSize {
		return nil, errors.New("file too large (max 20MB)")
	}
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range util.AllowedDocumentExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errors.New("unsupported file extension: " + ext)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	contentType, err := util.ValidateMimeType(file, []string{util.MimeImage, util.MimePDF})
	if err != nil {
		return nil, err
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, err
	}

	docID := model.GenerateUUID()
	objectName := fmt.Sprintf("enrollments/%d/%s%s", enrollmentID, docID, ext)

	url, err := s.Storage.Upload(ctx, objectName, file, fileHeader.Size, contentType)
	if err != nil {
		return nil, err
	}

	document := &model.Document{
		UUIDBase:     model.UUIDBase{ID: docID},
		EnrollmentID: enrollmentID,
		Kind:         kind,
		FileName:     fileHeader.Filename,
		ContentType:  contentType,
		Size:         fileHeader.Size,
		URL:          url,
		UploadedBy:   claims.UserID,
	}
	if err := s.DocumentRepo.Create(document); err != nil {
		// 落库失败时清掉已上传的对象
		_ = s.Storage.Delete(ctx, objectName)
		return nil, err
	}

	return document, nil
}

func (s *DocumentService) List(claims *util.Claims, enrollmentID uint) ([]model.Document, error) {
	if claims.SchoolID == nil {
		return nil, util.ErrPermissionDenied
	}
	if _, err := s.checkEnrollment(*claims.SchoolID, enrollmentID); err != nil {
		return nil, err
	}
	return s.DocumentRepo.ListByEnrollment(enrollmentID)
}

func (s *DocumentService) Delete(ctx context.Context, claims *util.Claims, documentID string) error {
	document, err := s.DocumentRepo.FindByID(documentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrDocumentNotFound
	}
	if err != nil {
		return err
	}

	if claims.SchoolID == nil {
		return util.ErrPermissionDenied
	}
	if _, err := s.checkEnrollment(*claims.SchoolID, document.EnrollmentID); err != nil {
		return err
	}

	ext := filepath.Ext(document.FileName)
	objectName := fmt.Sprintf("enrollments/%d/%s%s", document.EnrollmentID, document.ID, ext)
	_ = s.Storage.Delete(ctx, objectName)

	return s.DocumentRepo.Delete(documentID)
}
