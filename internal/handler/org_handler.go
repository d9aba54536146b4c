package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushq/uni-admin-api/internal/service"
	appErrors "github.com/campushq/uni-admin-api/pkg/errors"
	"github.com/campushq/uni-admin-api/pkg/response"
)

// OrgHandler exposes the institutional hierarchy endpoints: institutions,
// faculties, departments, programs and program-course assignments.
type OrgHandler struct {
	org *service.OrgService
}

// NewOrgHandler constructs OrgHandler.
func NewOrgHandler(org *service.OrgService) *OrgHandler {
	return &OrgHandler{org: org}
}

// ListInstitutions godoc
// @Summary List institutions
// @Tags Institutions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /institutions [get]
func (h *OrgHandler) ListInstitutions(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.org.ListInstitutions(c.Request.Context()), nil)
}

// GetInstitution godoc
// @Summary Get institution detail
// @Tags Institutions
// @Produce json
// @Param id path string true "Institution ID"
// @Success 200 {object} response.Envelope
// @Router /institutions/{id} [get]
func (h *OrgHandler) GetInstitution(c *gin.Context) {
	institution, err := h.org.GetInstitution(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, institution, nil)
}

// CreateInstitution godoc
// @Summary Create institution
// @Tags Institutions
// @Accept json
// @Produce json
// @Param payload body service.CreateInstitutionRequest true "Institution payload"
// @Success 201 {object} response.Envelope
// @Router /institutions [post]
func (h *OrgHandler) CreateInstitution(c *gin.Context) {
	var req service.CreateInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	institution, err := h.org.CreateInstitution(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, institution)
}

// UpdateInstitution godoc
// @Summary Update institution
// @Tags Institutions
// @Accept json
// @Produce json
// @Param id path string true "Institution ID"
// @Param payload body service.UpdateInstitutionRequest true "Institution payload"
// @Success 200 {object} response.Envelope
// @Router /institutions/{id} [put]
func (h *OrgHandler) UpdateInstitution(c *gin.Context) {
	var req service.UpdateInstitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	institution, err := h.org.UpdateInstitution(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, institution, nil)
}

// DeleteInstitution godoc
// @Summary Delete institution and its whole subtree
// @Tags Institutions
// @Produce json
// @Param id path string true "Institution ID"
// @Success 200 {object} response.Envelope
// @Router /institutions/{id} [delete]
func (h *OrgHandler) DeleteInstitution(c *gin.Context) {
	ack, err := h.org.DeleteInstitution(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ack, nil)
}

// ListFaculties godoc
// @Summary List faculties
// @Tags Faculties
// @Produce json
// @Param institutionId query string false "Filter by institution"
// @Success 200 {object} response.Envelope
// @Router /faculties [get]
func (h *OrgHandler) ListFaculties(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.org.ListFaculties(c.Request.Context(), c.Query("institutionId")), nil)
}

// GetFaculty godoc
// @Summary Get faculty detail
// @Tags Faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Router /faculties/{id} [get]
func (h *OrgHandler) GetFaculty(c *gin.Context) {
	faculty, err := h.org.GetFaculty(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty, nil)
}

// CreateFaculty godoc
// @Summary Create faculty
// @Tags Faculties
// @Accept json
// @Produce json
// @Param payload body service.CreateFacultyRequest true "Faculty payload"
// @Success 201 {object} response.Envelope
// @Router /faculties [post]
func (h *OrgHandler) CreateFaculty(c *gin.Context) {
	var req service.CreateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	faculty, err := h.org.CreateFaculty(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, faculty)
}

// UpdateFaculty godoc
// @Summary Update faculty
// @Tags Faculties
// @Accept json
// @Produce json
// @Param id path string true "Faculty ID"
// @Param payload body service.UpdateFacultyRequest true "Faculty payload"
// @Success 200 {object} response.Envelope
// @Router /faculties/{id} [put]
func (h *OrgHandler) UpdateFaculty(c *gin.Context) {
	var req service.UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	faculty, err := h.org.UpdateFaculty(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty, nil)
}

// DeleteFaculty godoc
// @Summary Delete faculty and its subtree
// @Tags Faculties
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} response.Envelope
// @Router /faculties/{id} [delete]
func (h *OrgHandler) DeleteFaculty(c *gin.Context) {
	ack, err := h.org.DeleteFaculty(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ack, nil)
}

// ListDepartments godoc
// @Summary List departments
// @Tags Departments
// @Produce json
// @Param facultyId query string false "Filter by faculty"
// @Success 200 {object} response.Envelope
// @Router /departments [get]
func (h *OrgHandler) ListDepartments(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.org.ListDepartments(c.Request.Context(), c.Query("facultyId")), nil)
}

// GetDepartment godoc
// @Summary Get department detail
// @Tags Departments
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} response.Envelope
// @Router /departments/{id} [get]
func (h *OrgHandler) GetDepartment(c *gin.Context) {
	department, err := h.org.GetDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, department, nil)
}

// CreateDepartment godoc
// @Summary Create department
// @Tags Departments
// @Accept json
// @Produce json
// @Param payload body service.CreateDepartmentRequest true "Department payload"
// @Success 201 {object} response.Envelope
// @Router /departments [post]
func (h *OrgHandler) CreateDepartment(c *gin.Context) {
	var req service.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	department, err := h.org.CreateDepartment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, department)
}

// UpdateDepartment godoc
// @Summary Update department
// @Tags Departments
// @Accept json
// @Produce json
// @Param id path string true "Department ID"
// @Param payload body service.UpdateDepartmentRequest true "Department payload"
// @Success 200 {object} response.Envelope
// @Router /departments/{id} [put]
func (h *OrgHandler) UpdateDepartment(c *gin.Context) {
	var req service.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	department, err := h.org.UpdateDepartment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, department, nil)
}

// DeleteDepartment godoc
// @Summary Delete department and its programs
// @Tags Departments
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} response.Envelope
// @Router /departments/{id} [delete]
func (h *OrgHandler) DeleteDepartment(c *gin.Context) {
	ack, err := h.org.DeleteDepartment(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ack, nil)
}

// ListPrograms godoc
// @Summary List programs
// @Tags Programs
// @Produce json
// @Param departmentId query string false "Filter by department"
// @Success 200 {object} response.Envelope
// @Router /programs [get]
func (h *OrgHandler) ListPrograms(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.org.ListPrograms(c.Request.Context(), c.Query("departmentId")), nil)
}

// GetProgram godoc
// @Summary Get program detail
// @Tags Programs
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} response.Envelope
// @Router /programs/{id} [get]
func (h *OrgHandler) GetProgram(c *gin.Context) {
	program, err := h.org.GetProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, program, nil)
}

// CreateProgram godoc
// @Summary Create program
// @Tags Programs
// @Accept json
// @Produce json
// @Param payload body service.CreateProgramRequest true "Program payload"
// @Success 201 {object} response.Envelope
// @Router /programs [post]
func (h *OrgHandler) CreateProgram(c *gin.Context) {
	var req service.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	program, err := h.org.CreateProgram(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, program)
}

// UpdateProgram godoc
// @Summary Update program
// @Tags Programs
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param payload body service.UpdateProgramRequest true "Program payload"
// @Success 200 {object} response.Envelope
// @Router /programs/{id} [put]
func (h *OrgHandler) UpdateProgram(c *gin.Context) {
	var req service.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	program, err := h.org.UpdateProgram(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, program, nil)
}

// DeleteProgram godoc
// @Summary Delete program, its course assignments and enrollments
// @Tags Programs
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} response.Envelope
// @Router /programs/{id} [delete]
func (h *OrgHandler) DeleteProgram(c *gin.Context) {
	ack, err := h.org.DeleteProgram(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ack, nil)
}

// ListProgramCourses godoc
// @Summary List course assignments of a program
// @Tags ProgramCourses
// @Produce json
// @Param programId query string false "Filter by program"
// @Success 200 {object} response.Envelope
// @Router /program-courses [get]
func (h *OrgHandler) ListProgramCourses(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.org.ListProgramCourses(c.Request.Context(), c.Query("programId")), nil)
}

// CreateProgramCourse godoc
// @Summary Assign a course to a program
// @Tags ProgramCourses
// @Accept json
// @Produce json
// @Param payload body service.CreateProgramCourseRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Router /program-courses [post]
func (h *OrgHandler) CreateProgramCourse(c *gin.Context) {
	var req service.CreateProgramCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.org.CreateProgramCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// UpdateProgramCourse godoc
// @Summary Not supported; delete and re-create to change an assignment
// @Tags ProgramCourses
// @Produce json
// @Param id path string true "Assignment ID"
// @Failure 405 {object} response.Envelope
// @Router /program-courses/{id} [put]
func (h *OrgHandler) UpdateProgramCourse(c *gin.Context) {
	response.Error(c, h.org.UpdateProgramCourse(c.Request.Context(), c.Param("id")))
}

// DeleteProgramCourse godoc
// @Summary Remove a course from a program
// @Tags ProgramCourses
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} response.Envelope
// @Router /program-courses/{id} [delete]
func (h *OrgHandler) DeleteProgramCourse(c *gin.Context) {
	ack, err := h.org.DeleteProgramCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ack, nil)
}
