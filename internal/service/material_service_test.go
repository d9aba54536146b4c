package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	"github.com/campushq/uni-admin-api/internal/store"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
	"github.com/campushq/uni-admin-api/pkg/storage"
)

func materialFixture(t *testing.T, maxSize int64) (*MaterialService, string) {
	t.Helper()
	ctx := context.Background()
	st := store.New()

	course, err := st.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro", CreditHours: 3})
	require.NoError(t, err)
	term, err := st.CreateTerm(ctx, models.AcademicTerm{TermType: models.TermTypeFall, Year: 2025})
	require.NoError(t, err)
	sec, err := st.CreateSection(ctx, models.CourseSection{CourseID: course.ID, TermID: term.ID, SectionNumber: "A", Capacity: 30})
	require.NoError(t, err)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", 10*time.Minute)

	return NewMaterialService(st, files, signer, nil, nil, maxSize), sec.ID
}

func TestMaterialUploadAndDownload(t *testing.T) {
	svc, secID := materialFixture(t, 0)
	ctx := context.Background()

	material, err := svc.Create(ctx, CreateMaterialRequest{
		SectionID:    secID,
		Title:        "Week 1 Notes",
		MaterialType: "lecture_notes",
	})
	require.NoError(t, err)
	assert.Equal(t, models.MaterialVisibilityStudents, material.Visibility)

	uploaded, err := svc.Upload(ctx, material.ID, "notes.pdf", strings.NewReader("lecture content"))
	require.NoError(t, err)
	assert.NotEmpty(t, uploaded.FilePath)
	assert.Equal(t, int64(len("lecture content")), uploaded.FileSize)

	link, err := svc.DownloadLink(ctx, material.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, link.Token)

	got, file, err := svc.OpenByToken(ctx, link.Token)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, material.ID, got.ID)
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "lecture content", string(content))
}

func TestMaterialUploadRejectsOversizedFile(t *testing.T) {
	svc, secID := materialFixture(t, 8)
	ctx := context.Background()

	material, err := svc.Create(ctx, CreateMaterialRequest{SectionID: secID, Title: "Big", MaterialType: "other"})
	require.NoError(t, err)

	_, err = svc.Upload(ctx, material.ID, "big.bin", strings.NewReader("way more than eight bytes"))
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestMaterialDownloadLinkRequiresFile(t *testing.T) {
	svc, secID := materialFixture(t, 0)
	ctx := context.Background()

	material, err := svc.Create(ctx, CreateMaterialRequest{SectionID: secID, Title: "No file", MaterialType: "reading"})
	require.NoError(t, err)

	_, err = svc.DownloadLink(ctx, material.ID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestMaterialCreateRejectsUnknownType(t *testing.T) {
	svc, secID := materialFixture(t, 0)

	_, err := svc.Create(context.Background(), CreateMaterialRequest{SectionID: secID, Title: "X", MaterialType: "video"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
