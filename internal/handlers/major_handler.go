package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dokuhost/admin-service/internal/auth/middleware"
	"github.com/dokuhost/admin-service/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MajorService is the interface that wraps methods for major administration business logic.
type MajorService interface {
	// Method GetMajors retrieves all majors with their student counters.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	GetMajors(ctx context.Context) ([]models.Major, error)
	// Method GetMajor retrieves one major by name.
	//
	// "name" parameter selects the major.
	//
	// If major with such name does not exist, the error will be returned together with "nil" value.
	GetMajor(ctx context.Context, name string) (*models.Major, error)
	// Method CreateMajor creates a new major with a zero student counter.
	//
	// "req" parameter carries the major name and description.
	//
	// If a major with such name already exists, the error will be returned together with "nil" value.
	CreateMajor(ctx context.Context, req *models.CreateMajorRequest) (*models.Major, error)
	// Method UpdateMajorDescription updates the description of a major by name.
	//
	// "req" parameter carries the major name and the new description.
	//
	// If major with such name does not exist, the error will be returned.
	UpdateMajorDescription(ctx context.Context, req *models.UpdateMajorDescriptionRequest) error
	// Method DeleteMajor removes an empty major by name.
	//
	// "name" parameter selects the major.
	//
	// If major with such name does not exist, the error will be returned.
	DeleteMajor(ctx context.Context, name string) error
}

// MajorHandler handles major administration HTTP requests
type MajorHandler struct {
	BaseHandler
	majorService MajorService
}

// NewMajorHandler creates a new major handler
func NewMajorHandler(majorService MajorService, logger *zap.Logger) *MajorHandler {
	return &MajorHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		majorService: majorService,
	}
}

// RegisterRoutes registers the major routes. The router must already carry
// the auth middleware.
func (h *MajorHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.GetMajors)
	r.Get("/{name}", h.GetMajor)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireTier(models.TierAdmin))
		r.Post("/add", h.CreateMajor)
		r.Put("/update_description", h.UpdateDescription)
		r.Delete("/{name}", h.DeleteMajor)
	})
}

// GetMajors handles GET /majors/
// @Summary Get all majors
// @Description Get all majors with their student counters
// @Tags majors
// @Produce json
// @Success 200 {array} models.Major "List of majors"
// @Router /majors/ [get]
func (h *MajorHandler) GetMajors(w http.ResponseWriter, r *http.Request) {
	majors, err := h.majorService.GetMajors(r.Context())
	if err != nil {
		h.Logger.Error("failed to get majors", zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, majors)
}

// GetMajor handles GET /majors/{name}
// @Summary Get major by name
// @Description Get one major with its student counter
// @Tags majors
// @Produce json
// @Param name path string true "Major name"
// @Success 200 {object} models.Major "Major data"
// @Failure 404 {object} map[string]string "Major not found"
// @Router /majors/{name} [get]
func (h *MajorHandler) GetMajor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	major, err := h.majorService.GetMajor(r.Context(), name)
	if err != nil {
		h.Logger.Warn("failed to get major", zap.String("majorName", name), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, major)
}

// CreateMajor handles POST /majors/add
// @Summary Create major
// @Description Create a new major with a zero student counter
// @Tags majors
// @Accept json
// @Produce json
// @Param request body models.CreateMajorRequest true "New major data"
// @Success 201 {object} models.Major "Created major"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Major name already exists"
// @Router /majors/add [post]
func (h *MajorHandler) CreateMajor(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMajorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	major, err := h.majorService.CreateMajor(r.Context(), &req)
	if err != nil {
		h.Logger.Warn("failed to create major", zap.String("majorName", req.MajorName), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, major)
}

// UpdateDescription handles PUT /majors/update_description
// @Summary Update major description
// @Description Update the description of a major selected by name
// @Tags majors
// @Accept json
// @Produce json
// @Param request body models.UpdateMajorDescriptionRequest true "Major name and new description"
// @Success 200 {object} map[string]string "Description updated"
// @Failure 404 {object} map[string]string "Major not found"
// @Router /majors/update_description [put]
func (h *MajorHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateMajorDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.majorService.UpdateMajorDescription(r.Context(), &req); err != nil {
		h.Logger.Warn("failed to update major description", zap.String("majorName", req.MajorName), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "major description updated successfully"})
}

// DeleteMajor handles DELETE /majors/{name}
// @Summary Delete major
// @Description Delete a major that has no students
// @Tags majors
// @Produce json
// @Param name path string true "Major name"
// @Success 200 {object} map[string]string "Major deleted"
// @Failure 404 {object} map[string]string "Major not found"
// @Failure 409 {object} map[string]string "Major still has students"
// @Router /majors/{name} [delete]
func (h *MajorHandler) DeleteMajor(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.majorService.DeleteMajor(r.Context(), name); err != nil {
		h.Logger.Warn("failed to delete major", zap.String("majorName", name), zap.Error(err))
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "major deleted successfully"})
}
