package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dokuhost/admin-service/internal/auth/middleware"
	"github.com/dokuhost/admin-service/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StudentService is the interface that wraps methods for student record keeping business logic.
type StudentService interface {
	// Method GetStudents retrieves students with their major names, honoring the filter.
	//
	// "filter" parameter narrows by course, major and enrollment year.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetStudents(ctx context.Context, filter models.StudentFilter) ([]models.StudentWithMajor, error)
	// Method GetStudent retrieves one student with its major name.
	//
	// "studentID" parameter selects the student.
	//
	// If student with such ID does not exist, the error will be returned together with "nil" value.
	GetStudent(ctx context.Context, studentID int) (*models.StudentWithMajor, error)
	// Method CreateStudent validates and creates a student record.
	//
	// "req" parameter carries the new student's data.
	//
	// If validation fails or the major does not exist, the error will be returned together with "nil" value.
	CreateStudent(ctx context.Context, req *models.CreateStudentRequest) (*models.StudentWithMajor, error)
	// Method UpdateStudent validates the provided fields and applies them.
	//
	// "studentID" parameter selects the student.
	// "req" parameter carries the fields to change, nil fields are left unchanged.
	//
	// If student with such ID does not exist, the error will be returned together with "nil" value.
	UpdateStudent(ctx context.Context, studentID int, req *models.UpdateStudentRequest) (*models.StudentWithMajor, error)
	// Method DeleteStudent removes a student record.
	//
	// "studentID" parameter selects the student.
	//
	// If student with such ID does not exist, the error will be returned.
	DeleteStudent(ctx context.Context, studentID int) error
}

// StudentHandler handles student record HTTP requests
type StudentHandler struct {
	BaseHandler
	studentService StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService StudentService, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		studentService: studentService,
	}
}

// RegisterRoutes registers the student routes. The router must already carry
// the auth middleware.
func (h *StudentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.GetStudents)
	r.Get("/{id}", h.GetStudent)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireTier(models.TierModerator))
		r.Post("/add", h.CreateStudent)
		r.Put("/update/{id}", h.UpdateStudent)
		r.Delete("/dell/{id}", h.DeleteStudent)
	})
}

// GetStudents handles GET /students/
// @Summary Get students
// @Description Get students with their major names, optionally filtered
// @Tags students
// @Produce json
// @Param course query int false "Filter by course (1-5)"
// @Param major_id query int false "Filter by major ID"
// @Param enrollment_year query int false "Filter by enrollment year"
// @Success 200 {array} models.StudentWithMajor "List of students"
// @Router /students/ [get]
func (h *StudentHandler) GetStudents(w http.ResponseWriter, r *http.Request) {
	course, _ := strconv.Atoi(r.URL.Query().Get("course"))
	majorID, _ := strconv.Atoi(r.URL.Query().Get("major_id"))
	enrollmentYear, _ := strconv.Atoi(r.URL.Query().Get("enrollment_year"))

	students, err := h.studentService.GetStudents(r.Context(), models.StudentFilter{
		Course:         course,
		MajorID:        majorID,
		EnrollmentYear: enrollmentYear,
	})
	if err != nil {
		h.Logger.Error("failed to get students", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, students)
}

// GetStudent handles GET /students/{id}
// @Summary Get student by ID
// @Description Get one student with its major name
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} models.StudentWithMajor "Student data"
// @Failure 404 {object} map[string]string "Student not found"
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	student, err := h.studentService.GetStudent(r.Context(), studentID)
	if err != nil {
		h.Logger.Warn("failed to get student", zap.Int("studentId", studentID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, student)
}

// CreateStudent handles POST /students/add
// @Summary Create student
// @Description Create a student record; the major counter is updated atomically
// @Tags students
// @Accept json
// @Produce json
// @Param request body models.CreateStudentRequest true "New student data"
// @Success 201 {object} models.StudentWithMajor "Created student"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Major not found"
// @Router /students/add [post]
func (h *StudentHandler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	student, err := h.studentService.CreateStudent(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to create student", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, student)
}

// UpdateStudent handles PUT /students/update/{id}
// @Summary Update student
// @Description Apply the provided fields to a student; a major move updates both counters atomically
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param request body models.UpdateStudentRequest true "Fields to change"
// @Success 200 {object} models.StudentWithMajor "Updated student"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Student or major not found"
// @Router /students/update/{id} [put]
func (h *StudentHandler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	student, err := h.studentService.UpdateStudent(r.Context(), studentID, &req)
	if err != nil {
		h.Logger.Warn("failed to update student", zap.Int("studentId", studentID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, student)
}

// DeleteStudent handles DELETE /students/dell/{id}
// @Summary Delete student
// @Description Delete a student; the major counter is updated atomically
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} map[string]string "Student deleted"
// @Failure 404 {object} map[string]string "Student not found"
// @Router /students/dell/{id} [delete]
func (h *StudentHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.studentService.DeleteStudent(r.Context(), studentID); err != nil {
		h.Logger.Warn("failed to delete student", zap.Int("studentId", studentID), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "student deleted successfully"})
}
