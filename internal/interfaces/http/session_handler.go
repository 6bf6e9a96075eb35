package http

import (
	"net/http"

	"github.com/bonecole/appcore/internal/notification"
	"github.com/labstack/echo/v4"
)

// SessionHandler app lifecycle and reminder endpoints
type SessionHandler struct {
	Scheduler *notification.Scheduler
}

// NewSessionHandler create a session controller instance
func NewSessionHandler(Scheduler *notification.Scheduler) *SessionHandler {
	return &SessionHandler{Scheduler: Scheduler}
}

// HandleForeground record app-open time and refresh the inactivity reminder
func (sh *SessionHandler) HandleForeground(c echo.Context) (err error) {
	sh.Scheduler.HandleAppForeground(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// HandleRequestPermissions ...
func (sh *SessionHandler) HandleRequestPermissions(c echo.Context) (err error) {
	granted := sh.Scheduler.RequestPermissions(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]bool{"granted": granted})
}

type lessonReminderPost struct {
	LessonName string `json:"lessonName"`
}

// HandleScheduleLessonReminder ...
func (sh *SessionHandler) HandleScheduleLessonReminder(c echo.Context) (err error) {
	post := new(lessonReminderPost)
	if err = c.Bind(post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, "Failed to bind reminder entity").SetDetail(internal.Error()))
	}
	sh.Scheduler.ScheduleLessonReminder(c.Request().Context(), c.Param("lessonId"), post.LessonName)
	return c.NoContent(http.StatusAccepted)
}

// HandleCancelLessonReminder ...
func (sh *SessionHandler) HandleCancelLessonReminder(c echo.Context) (err error) {
	sh.Scheduler.CancelLessonReminder(c.Request().Context(), c.Param("lessonId"))
	return c.NoContent(http.StatusNoContent)
}

// HandleGetScheduled list pending notification requests, debug aid
func (sh *SessionHandler) HandleGetScheduled(c echo.Context) (err error) {
	requests := sh.Scheduler.Scheduled(c.Request().Context())
	if requests == nil {
		requests = []notification.Request{}
	}
	return c.JSON(http.StatusOK, requests)
}
