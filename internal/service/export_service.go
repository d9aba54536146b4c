package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/campushq/uni-admin-api/internal/models"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
	"github.com/campushq/uni-admin-api/pkg/export"
)

type exportStore interface {
	GetSection(ctx context.Context, id string) (*models.CourseSectionDetail, error)
	ListRegistrations(ctx context.Context, sectionID, studentID string) []models.CourseRegistrationDetail
	ListAttendance(ctx context.Context, sectionID, date string) []models.AttendanceRecordDetail
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title, subtitle string) ([]byte, error)
}

// ExportFormat selects the rendered output.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered document ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders section rosters and attendance sheets as CSV or PDF.
type ExportService struct {
	store  exportStore
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs the export service.
func NewExportService(store exportStore, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{store: store, csv: csv, pdf: pdf, logger: logger}
}

// SectionRoster renders the list of registered students for a section.
func (s *ExportService) SectionRoster(ctx context.Context, sectionID string, format ExportFormat) (*ExportFile, error) {
	section, err := s.store.GetSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Headers: []string{"Student Number", "Student Name", "Status", "Registered At"}}
	for _, reg := range s.store.ListRegistrations(ctx, sectionID, "") {
		data.Rows = append(data.Rows, map[string]string{
			"Student Number": reg.StudentNumber,
			"Student Name":   reg.StudentName,
			"Status":         string(reg.Status),
			"Registered At":  reg.CreatedAt.Format("2006-01-02"),
		})
	}

	title := fmt.Sprintf("Roster %s %s", section.CourseCode, section.SectionNumber)
	subtitle := fmt.Sprintf("%s | enrolled %s of %s", section.TermName,
		strconv.Itoa(section.EnrolledCount), strconv.Itoa(section.Capacity))
	return s.render(data, format, title, subtitle)
}

// AttendanceSheet renders a section's attendance, optionally for one date.
func (s *ExportService) AttendanceSheet(ctx context.Context, sectionID, date string, format ExportFormat) (*ExportFile, error) {
	section, err := s.store.GetSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	data := export.Dataset{Headers: []string{"Date", "Student Number", "Student Name", "Status", "Notes"}}
	for _, rec := range s.store.ListAttendance(ctx, sectionID, date) {
		data.Rows = append(data.Rows, map[string]string{
			"Date":           rec.Date,
			"Student Number": rec.StudentNumber,
			"Student Name":   rec.StudentName,
			"Status":         string(rec.Status),
			"Notes":          rec.Notes,
		})
	}

	title := fmt.Sprintf("Attendance %s %s", section.CourseCode, section.SectionNumber)
	subtitle := section.TermName
	if date != "" {
		subtitle = fmt.Sprintf("%s | %s", section.TermName, date)
	}
	return s.render(data, format, title, subtitle)
}

func (s *ExportService) render(data export.Dataset, format ExportFormat, title, subtitle string) (*ExportFile, error) {
	switch format {
	case ExportFormatCSV:
		raw, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{Filename: slugify(title) + ".csv", ContentType: "text/csv", Data: raw}, nil
	case ExportFormatPDF:
		raw, err := s.pdf.Render(data, title, subtitle)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Filename: slugify(title) + ".pdf", ContentType: "application/pdf", Data: raw}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown export format: "+string(format))
	}
}

func slugify(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ', r == '-', r == '_':
			out = append(out, '-')
		}
	}
	return string(out)
}
