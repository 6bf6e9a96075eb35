package http

import (
	"net/http"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/validate"
	"github.com/labstack/echo/v4"
)

// ProgressHandler media playback position endpoints
type ProgressHandler struct {
	ProgressStore domain.ProgressStore
	Validator     validate.Validator
}

// NewProgressHandler create a progress controller instance
func NewProgressHandler(ProgressStore domain.ProgressStore, Validator validate.Validator) *ProgressHandler {
	return &ProgressHandler{
		ProgressStore: ProgressStore,
		Validator:     Validator,
	}
}

type progressPut struct {
	Position int64            `json:"position" validate:"min=0"`
	Duration int64            `json:"duration,omitempty" validate:"omitempty,min=0"`
	Type     domain.MediaType `json:"type" validate:"required,oneof=video audio pdf"`
}

// HandleSaveProgress overwrite the stored position for a lesson
func (ph *ProgressHandler) HandleSaveProgress(c echo.Context) (err error) {
	post := new(progressPut)
	if err = c.Bind(post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, "Failed to bind progress entity").SetDetail(internal.Error()))
	}
	if errs := ph.Validator.Struct(post); errs != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", errs))
	}

	progress := &domain.MediaProgress{
		LessonID: c.Param("lessonId"),
		Position: post.Position,
		Duration: post.Duration,
		Type:     post.Type,
	}
	if err := ph.ProgressStore.SaveProgress(c.Request().Context(), progress); err != nil {
		return c.JSON(http.StatusInternalServerError,
			NewRESTStandardError(http.StatusInternalServerError, "Failed to persist progress").SetDetail(err.Error()))
	}
	return c.JSON(http.StatusOK, progress)
}

// HandleGetProgress ...
func (ph *ProgressHandler) HandleGetProgress(c echo.Context) (err error) {
	progress, ok := ph.ProgressStore.GetProgress(c.Request().Context(), c.Param("lessonId"))
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, progress)
}

// HandleDeleteProgress ...
func (ph *ProgressHandler) HandleDeleteProgress(c echo.Context) (err error) {
	if err := ph.ProgressStore.DeleteProgress(c.Request().Context(), c.Param("lessonId")); err != nil {
		return c.JSON(http.StatusInternalServerError,
			NewRESTStandardError(http.StatusInternalServerError, "Failed to delete progress").SetDetail(err.Error()))
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleGetAllProgress ...
func (ph *ProgressHandler) HandleGetAllProgress(c echo.Context) (err error) {
	records := ph.ProgressStore.GetAllProgress(c.Request().Context())
	if records == nil {
		records = []*domain.MediaProgress{}
	}
	return c.JSON(http.StatusOK, records)
}

// HandleClearAllProgress ...
func (ph *ProgressHandler) HandleClearAllProgress(c echo.Context) (err error) {
	if err := ph.ProgressStore.ClearAllProgress(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError,
			NewRESTStandardError(http.StatusInternalServerError, "Failed to clear progress").SetDetail(err.Error()))
	}
	return c.NoContent(http.StatusNoContent)
}
