package store

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/campushq/uni-admin-api/internal/models"
)

// Seed populates an empty store with a small demo dataset through the
// regular mutation paths so every invariant holds. Calling Seed on a
// non-empty store is a no-op.
func (s *Store) Seed(ctx context.Context) error {
	s.mu.Lock()
	empty := len(s.institutions) == 0 && len(s.users) == 0
	s.mu.Unlock()
	if !empty {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("ChangeMe1!"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	admin, err := s.CreateUser(ctx, models.User{
		Email:        "admin@northgate.edu",
		PasswordHash: string(hash),
		FullName:     "Site Administrator",
		Active:       true,
	}, []models.RoleType{models.RoleAdmin, models.RoleSuper})
	if err != nil {
		return err
	}
	_ = admin

	prof, err := s.CreateUser(ctx, models.User{
		Email:        "j.okafor@northgate.edu",
		PasswordHash: string(hash),
		FullName:     "Jordan Okafor",
		Active:       true,
	}, []models.RoleType{models.RoleFaculty})
	if err != nil {
		return err
	}

	inst, err := s.CreateInstitution(ctx, models.Institution{
		Name:        "Northgate University",
		Description: "Public research university",
	})
	if err != nil {
		return err
	}

	fac, err := s.CreateFaculty(ctx, models.Faculty{
		InstitutionID: inst.ID,
		Name:          "Faculty of Science",
		Description:   "Natural and computational sciences",
	})
	if err != nil {
		return err
	}

	dept, err := s.CreateDepartment(ctx, models.Department{
		FacultyID:   fac.ID,
		Name:        "Computer Science",
		Description: "Computing and software engineering",
	})
	if err != nil {
		return err
	}

	prog, err := s.CreateProgram(ctx, models.Program{
		DepartmentID: dept.ID,
		Title:        "BSc Computer Science",
		Description:  "Four-year undergraduate degree",
		ProgramLevel: models.ProgramLevelUndergraduate,
	})
	if err != nil {
		return err
	}

	courses := []models.Course{
		{CourseCode: "CS101", Name: "Introduction to Programming", CreditHours: 3},
		{CourseCode: "CS201", Name: "Data Structures", CreditHours: 4},
		{CourseCode: "MATH110", Name: "Discrete Mathematics", CreditHours: 3},
	}
	created := make([]*models.Course, 0, len(courses))
	for _, c := range courses {
		row, err := s.CreateCourse(ctx, c)
		if err != nil {
			return err
		}
		created = append(created, row)
		if _, err := s.CreateProgramCourse(ctx, models.ProgramCourse{ProgramID: prog.ID, CourseID: row.ID}); err != nil {
			return err
		}
	}

	term, err := s.CreateTerm(ctx, models.AcademicTerm{
		TermType:  models.TermTypeFall,
		Year:      time.Now().UTC().Year(),
		StartDate: time.Date(time.Now().UTC().Year(), time.September, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(time.Now().UTC().Year(), time.December, 20, 0, 0, 0, 0, time.UTC),
		Status:    models.TermStatusActive,
	})
	if err != nil {
		return err
	}

	section, err := s.CreateSection(ctx, models.CourseSection{
		CourseID:      created[0].ID,
		TermID:        term.ID,
		SectionNumber: "A",
		Capacity:      40,
		Schedule:      "Mon/Wed 10:00-11:30",
		Room:          "SCI-204",
	})
	if err != nil {
		return err
	}

	if _, err := s.CreateInstructor(ctx, models.CourseInstructor{
		SectionID: section.ID,
		UserID:    prof.ID,
		Role:      models.InstructorRolePrimary,
	}); err != nil {
		return err
	}

	students := []models.Student{
		{StudentNumber: "NG-2024-001", FirstName: "Amina", LastName: "Diallo", Email: "a.diallo@student.northgate.edu", DepartmentID: dept.ID},
		{StudentNumber: "NG-2024-002", FirstName: "Tomas", LastName: "Reyes", Email: "t.reyes@student.northgate.edu", DepartmentID: dept.ID},
	}
	for _, stu := range students {
		row, err := s.CreateStudent(ctx, stu)
		if err != nil {
			return err
		}
		if _, err := s.CreateEnrollment(ctx, models.ProgramEnrollment{StudentID: row.ID, ProgramID: prog.ID}); err != nil {
			return err
		}
		if _, err := s.CreateRegistration(ctx, models.CourseRegistration{StudentID: row.ID, SectionID: section.ID}); err != nil {
			return err
		}
	}

	if _, err := s.CreateEmployee(ctx, models.DepartmentEmployee{
		DepartmentID: dept.ID,
		FullName:     "Priya Raman",
		Position:     "Department Coordinator",
		HireDate:     time.Date(2021, time.March, 15, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		return err
	}

	return nil
}
