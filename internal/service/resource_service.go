package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
	"github.com/noah-isme/uni-timetable-api/pkg/storage"
)

const defaultResourceCategory = "Cours"

var safeExtension = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)

type resourceRepository interface {
	Create(ctx context.Context, res *models.Resource) error
	FindByID(ctx context.Context, id int64) (*models.ResourceDetail, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.ResourceDetail, error)
	RecentForClass(ctx context.Context, classID int64, limit int) ([]models.ResourceDetail, error)
	Delete(ctx context.Context, id int64) error
}

type fileStore interface {
	SaveStream(ref string, r io.Reader) (int64, error)
	Open(ref string) (*os.File, error)
	Delete(ref string) error
}

type fileDeleter interface {
	Delete(ref string) error
}

type downloadSigner interface {
	Generate(subject, ref string) (string, time.Time, error)
	Parse(token string) (subject, ref string, err error)
}

// ResourceConfig bounds uploads and shapes download links.
type ResourceConfig struct {
	APIPrefix    string
	MaxFileSize  int64
	AllowedMIMEs []string
}

// ResourceServiceDeps groups the collaborators of ResourceService.
type ResourceServiceDeps struct {
	Repo   resourceRepository
	Units  unitFinder
	Store  fileStore
	Signer downloadSigner
	Purger purgeEnqueuer
	Cache  *CacheService
}

// ResourceService stores course material and hands out signed download links.
type ResourceService struct {
	repo      resourceRepository
	units     unitFinder
	store     fileStore
	signer    downloadSigner
	purger    purgeEnqueuer
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	config    ResourceConfig
	allowed   map[string]struct{}
}

// NewResourceService constructs a ResourceService.
func NewResourceService(deps ResourceServiceDeps, validate *validator.Validate, logger *zap.Logger, cfg ResourceConfig) *ResourceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 20 << 20
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, mime := range cfg.AllowedMIMEs {
		allowed[normalizeMIME(mime)] = struct{}{}
	}
	return &ResourceService{
		repo:      deps.Repo,
		units:     deps.Units,
		store:     deps.Store,
		signer:    deps.Signer,
		purger:    deps.Purger,
		cache:     deps.Cache,
		validator: validate,
		logger:    logger,
		config:    cfg,
		allowed:   allowed,
	}
}

// Upload stores body and records its metadata.
func (s *ResourceService) Upload(ctx context.Context, actor Actor, meta dto.ResourceUpload, body io.Reader) (*models.ResourceDetail, error) {
	if err := s.validator.Struct(meta); err != nil {
		return nil, validationError(err, "invalid resource payload")
	}
	if meta.Size > s.config.MaxFileSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes", s.config.MaxFileSize))
	}
	mime := normalizeMIME(meta.MimeType)
	if !s.mimeAllowed(mime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file type %s is not allowed", mime))
	}
	if !actor.canActFor(meta.TeacherID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot upload for another teacher")
	}
	unit, err := s.units.FindByID(ctx, meta.TeachingUnitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("teaching unit %d does not exist", meta.TeachingUnitID))
		}
		return nil, mapStoreError(s.logger, err, "teaching unit", "load")
	}
	if unit.TeacherID != meta.TeacherID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teaching unit belongs to another teacher")
	}

	ref := storageRef(meta.TeacherID, meta.FileName)
	written, err := s.store.SaveStream(ref, io.LimitReader(body, s.config.MaxFileSize+1))
	if err != nil {
		s.logger.Error("failed to store resource file", zap.String("ref", ref), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}
	if written > s.config.MaxFileSize {
		s.discard(ref)
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes", s.config.MaxFileSize))
	}

	category := strings.TrimSpace(meta.Category)
	if category == "" {
		category = defaultResourceCategory
	}
	resource := models.Resource{
		Name:           strings.TrimSpace(meta.Name),
		Category:       category,
		FileType:       fileTypeOf(mime),
		MimeType:       mime,
		StorageRef:     ref,
		SizeBytes:      written,
		TeacherID:      meta.TeacherID,
		TeachingUnitID: unit.ID,
	}
	if err := s.repo.Create(ctx, &resource); err != nil {
		s.discard(ref)
		return nil, mapStoreError(s.logger, err, "resource", "create")
	}

	s.cache.Invalidate(ctx, dashboardKeyPattern)
	detail := &models.ResourceDetail{Resource: resource, UECode: unit.Code, UEName: unit.Name}
	s.decorate(detail)
	return detail, nil
}

// Get returns resource metadata with a fresh download link.
func (s *ResourceService) Get(ctx context.Context, id int64) (*models.ResourceDetail, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "resource", "load")
	}
	s.decorate(res)
	return res, nil
}

// ListForTeacher returns a teacher's uploads, newest first.
func (s *ResourceService) ListForTeacher(ctx context.Context, teacherID int64) ([]models.ResourceDetail, error) {
	items, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "resource", "list")
	}
	for i := range items {
		s.decorate(&items[i])
	}
	return items, nil
}

// RecentForClass returns the latest uploads of the units taught to a class.
func (s *ResourceService) RecentForClass(ctx context.Context, classID int64, limit int) ([]models.ResourceDetail, error) {
	items, err := s.repo.RecentForClass(ctx, classID, limit)
	if err != nil {
		return nil, mapStoreError(s.logger, err, "resource", "list")
	}
	for i := range items {
		s.decorate(&items[i])
	}
	return items, nil
}

// Open validates a download token and opens the stored file. The caller
// closes the returned file.
func (s *ResourceService) Open(ctx context.Context, id int64, token string) (*models.ResourceDetail, *os.File, error) {
	subject, ref, err := s.signer.Parse(token)
	if err != nil || subject != strconv.FormatInt(id, 10) {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download link")
	}
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, mapStoreError(s.logger, err, "resource", "load")
	}
	if res.StorageRef != ref {
		return nil, nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download link")
	}
	file, err := s.store.Open(ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "file not found")
		}
		s.logger.Error("failed to open resource file", zap.Int64("resource_id", id), zap.Error(err))
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file")
	}
	return res, file, nil
}

// Delete removes resource metadata and schedules the stored file for purge.
func (s *ResourceService) Delete(ctx context.Context, actor Actor, id int64) error {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapStoreError(s.logger, err, "resource", "load")
	}
	if !actor.canActFor(res.TeacherID) {
		return appErrors.Clone(appErrors.ErrForbidden, "resource belongs to another teacher")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(s.logger, err, "resource", "delete")
	}
	enqueuePurge(s.purger, s.logger, res.StorageRef)
	s.cache.Invalidate(ctx, dashboardKeyPattern)
	return nil
}

func (s *ResourceService) decorate(res *models.ResourceDetail) {
	res.Size = res.DisplaySize()
	if s.signer == nil {
		return
	}
	token, expiresAt, err := s.signer.Generate(strconv.FormatInt(res.ID, 10), res.StorageRef)
	if err != nil {
		s.logger.Warn("failed to sign download link", zap.Int64("resource_id", res.ID), zap.Error(err))
		return
	}
	res.DownloadURL = fmt.Sprintf("%s/resources/%d/download?token=%s", s.config.APIPrefix, res.ID, url.QueryEscape(token))
	res.ExpiresAt = &expiresAt
}

func (s *ResourceService) discard(ref string) {
	if err := s.store.Delete(ref); err != nil {
		s.logger.Warn("failed to discard stored file", zap.String("ref", ref), zap.Error(err))
	}
}

func (s *ResourceService) mimeAllowed(mime string) bool {
	if len(s.allowed) == 0 {
		return true
	}
	_, ok := s.allowed[mime]
	return ok
}

// NewPurgeHandler returns the job handler deleting the stored files of
// removed resources. Invalid payloads are dropped without retry.
func NewPurgeHandler(store fileDeleter, metrics *MetricsService, logger *zap.Logger) jobs.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, job jobs.Job) error {
		ref, ok := job.Payload.(string)
		if !ok || ref == "" {
			logger.Warn("dropping purge job without file reference", zap.String("job_id", job.ID))
			metrics.RecordPurge(false)
			return nil
		}
		if err := store.Delete(ref); err != nil {
			metrics.RecordPurge(false)
			if errors.Is(err, storage.ErrInvalidPath) {
				logger.Warn("dropping purge job with invalid reference", zap.String("ref", ref))
				return nil
			}
			return err
		}
		metrics.RecordPurge(true)
		return nil
	}
}

func storageRef(teacherID int64, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !safeExtension.MatchString(ext) {
		ext = ""
	}
	return fmt.Sprintf("teachers/%d/%s%s", teacherID, uuid.NewString(), ext)
}

func normalizeMIME(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

// fileTypeOf derives the display type from the MIME subtype, e.g. "PDF".
func fileTypeOf(mime string) string {
	if i := strings.IndexByte(mime, '/'); i >= 0 && i < len(mime)-1 {
		return strings.ToUpper(mime[i+1:])
	}
	return "FILE"
}
