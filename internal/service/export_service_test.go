package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	"github.com/campushq/uni-admin-api/internal/store"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
	"github.com/campushq/uni-admin-api/pkg/export"
)

func exportFixture(t *testing.T) (*ExportService, string) {
	t.Helper()
	ctx := context.Background()
	st := store.New()

	inst, err := st.CreateInstitution(ctx, models.Institution{Name: "Northgate"})
	require.NoError(t, err)
	fac, err := st.CreateFaculty(ctx, models.Faculty{InstitutionID: inst.ID, Name: "Science"})
	require.NoError(t, err)
	dept, err := st.CreateDepartment(ctx, models.Department{FacultyID: fac.ID, Name: "CS"})
	require.NoError(t, err)
	course, err := st.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro", CreditHours: 3})
	require.NoError(t, err)
	term, err := st.CreateTerm(ctx, models.AcademicTerm{TermType: models.TermTypeFall, Year: 2025})
	require.NoError(t, err)
	sec, err := st.CreateSection(ctx, models.CourseSection{CourseID: course.ID, TermID: term.ID, SectionNumber: "A", Capacity: 30})
	require.NoError(t, err)
	stu, err := st.CreateStudent(ctx, models.Student{StudentNumber: "NG-001", FirstName: "Amina", LastName: "Diallo", Email: "a@test", DepartmentID: dept.ID})
	require.NoError(t, err)
	_, err = st.CreateRegistration(ctx, models.CourseRegistration{StudentID: stu.ID, SectionID: sec.ID})
	require.NoError(t, err)
	_, err = st.BulkUpsertAttendance(ctx, sec.ID, "2025-09-01", []models.AttendanceEntry{{StudentID: stu.ID, Status: models.AttendanceStatusPresent}})
	require.NoError(t, err)

	return NewExportService(st, export.NewCSVExporter(), export.NewPDFExporter(), nil), sec.ID
}

func TestSectionRosterCSV(t *testing.T) {
	svc, secID := exportFixture(t)

	file, err := svc.SectionRoster(context.Background(), secID, ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	content := string(file.Data)
	assert.Contains(t, content, "Student Number")
	assert.Contains(t, content, "NG-001")
	assert.Contains(t, content, "Amina Diallo")
}

func TestAttendanceSheetPDF(t *testing.T) {
	svc, secID := exportFixture(t)

	file, err := svc.AttendanceSheet(context.Background(), secID, "2025-09-01", ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasPrefix(string(file.Data), "%PDF"))
}

func TestExportUnknownFormat(t *testing.T) {
	svc, secID := exportFixture(t)

	_, err := svc.SectionRoster(context.Background(), secID, ExportFormat("xlsx"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestExportUnknownSection(t *testing.T) {
	svc, _ := exportFixture(t)

	_, err := svc.SectionRoster(context.Background(), "sec_missing", ExportFormatCSV)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
