package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/uni-admin-api/internal/models"
	"github.com/campushq/uni-admin-api/internal/service"
	"github.com/campushq/uni-admin-api/internal/store"
	"github.com/campushq/uni-admin-api/pkg/response"
)

type registrationFixture struct {
	handler   *RegistrationHandler
	store     *store.Store
	deptID    string
	studentID string
	sectionID string
}

func newRegistrationFixture(t *testing.T, capacity int) registrationFixture {
	t.Helper()
	ctx := context.Background()
	st := store.New()

	inst, err := st.CreateInstitution(ctx, models.Institution{Name: "Northgate University"})
	require.NoError(t, err)
	fac, err := st.CreateFaculty(ctx, models.Faculty{InstitutionID: inst.ID, Name: "Science"})
	require.NoError(t, err)
	dept, err := st.CreateDepartment(ctx, models.Department{FacultyID: fac.ID, Name: "Computer Science"})
	require.NoError(t, err)
	course, err := st.CreateCourse(ctx, models.Course{CourseCode: "CS101", Name: "Intro to Programming", CreditHours: 3})
	require.NoError(t, err)
	term, err := st.CreateTerm(ctx, models.AcademicTerm{TermType: models.TermTypeFall, Year: 2025})
	require.NoError(t, err)
	sec, err := st.CreateSection(ctx, models.CourseSection{CourseID: course.ID, TermID: term.ID, SectionNumber: "A", Capacity: capacity})
	require.NoError(t, err)
	stu, err := st.CreateStudent(ctx, models.Student{
		StudentNumber: "NG-001",
		FirstName:     "Amina",
		LastName:      "Diallo",
		Email:         "amina@student.test",
		DepartmentID:  dept.ID,
	})
	require.NoError(t, err)

	return registrationFixture{
		handler:   NewRegistrationHandler(service.NewRegistrationService(st, nil, nil)),
		store:     st,
		deptID:    dept.ID,
		studentID: stu.ID,
		sectionID: sec.ID,
	}
}

func postJSON(t *testing.T, path string, payload interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return w, c
}

func TestRegistrationHandlerCreate(t *testing.T) {
	fx := newRegistrationFixture(t, 30)

	w, c := postJSON(t, "/registrations", service.CreateRegistrationRequest{
		StudentID: fx.studentID,
		SectionID: fx.sectionID,
	})
	fx.handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data models.CourseRegistrationDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "Amina Diallo", envelope.Data.StudentName)
	assert.Equal(t, "CS101", envelope.Data.CourseCode)
	assert.Equal(t, models.RegistrationStatusRegistered, envelope.Data.Status)
}

func TestRegistrationHandlerCreateInvalidBody(t *testing.T) {
	fx := newRegistrationFixture(t, 30)
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/registrations", bytes.NewBufferString(`{"student_id":`))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	fx.handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
}

func TestRegistrationHandlerCreateFullSection(t *testing.T) {
	fx := newRegistrationFixture(t, 1)
	ctx := context.Background()

	w, c := postJSON(t, "/registrations", service.CreateRegistrationRequest{
		StudentID: fx.studentID,
		SectionID: fx.sectionID,
	})
	fx.handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	other, err := fx.store.CreateStudent(ctx, models.Student{
		StudentNumber: "NG-002",
		FirstName:     "Bram",
		LastName:      "Visser",
		Email:         "bram@student.test",
		DepartmentID:  fx.deptID,
	})
	require.NoError(t, err)

	w2, c2 := postJSON(t, "/registrations", service.CreateRegistrationRequest{
		StudentID: other.ID,
		SectionID: fx.sectionID,
	})
	fx.handler.Create(c2)
	require.Equal(t, http.StatusConflict, w2.Code)
}

func TestRegistrationHandlerDrop(t *testing.T) {
	fx := newRegistrationFixture(t, 30)

	w, c := postJSON(t, "/registrations", service.CreateRegistrationRequest{
		StudentID: fx.studentID,
		SectionID: fx.sectionID,
	})
	fx.handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data models.CourseRegistrationDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	gin.SetMode(gin.TestMode)
	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	req, _ := http.NewRequest(http.MethodPost, "/registrations/"+envelope.Data.ID+"/drop", nil)
	c2.Request = req
	c2.Params = gin.Params{{Key: "id", Value: envelope.Data.ID}}

	fx.handler.Drop(c2)
	require.Equal(t, http.StatusOK, w2.Code)

	var dropped struct {
		Data models.CourseRegistrationDetail `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &dropped))
	assert.Equal(t, models.RegistrationStatusDropped, dropped.Data.Status)
}
