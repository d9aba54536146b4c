package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
)

type attendanceStore interface {
	ListAttendance(ctx context.Context, sectionID, date string) []models.AttendanceRecordDetail
	BulkUpsertAttendance(ctx context.Context, sectionID, date string, entries []models.AttendanceEntry) ([]models.AttendanceRecord, error)
	DeleteAttendance(ctx context.Context, id string) (*models.DeleteAck, error)
	AttendanceSummary(ctx context.Context, sectionID, studentID string) (*models.AttendanceSummary, error)
}

// RecordAttendanceRequest carries one day's attendance sheet for a section.
type RecordAttendanceRequest struct {
	SectionID string                   `json:"section_id" validate:"required"`
	Date      string                   `json:"date" validate:"required"`
	Entries   []models.AttendanceEntry `json:"entries" validate:"required,min=1,dive"`
}

// AttendanceService handles attendance use-cases.
type AttendanceService struct {
	store     attendanceStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(store attendanceStore, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{store: store, validator: validate, logger: logger}
}

// List returns attendance records for a section, optionally for one date.
func (s *AttendanceService) List(ctx context.Context, sectionID, date string) ([]models.AttendanceRecordDetail, error) {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
		}
	}
	return s.store.ListAttendance(ctx, sectionID, date), nil
}

// Record upserts one day's attendance for a section. Existing records for
// the same (student, date) are overwritten, so re-submitting a corrected
// sheet is safe.
func (s *AttendanceService) Record(ctx context.Context, req RecordAttendanceRequest) ([]models.AttendanceRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	for _, entry := range req.Entries {
		if !entry.Status.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown attendance status: "+string(entry.Status))
		}
	}
	return s.store.BulkUpsertAttendance(ctx, req.SectionID, req.Date, req.Entries)
}

// Delete removes a single attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id string) (*models.DeleteAck, error) {
	return s.store.DeleteAttendance(ctx, id)
}

// Summary aggregates a student's attendance within a section.
func (s *AttendanceService) Summary(ctx context.Context, sectionID, studentID string) (*models.AttendanceSummary, error) {
	return s.store.AttendanceSummary(ctx, sectionID, studentID)
}
