package http

import (
	"net/http"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/validate"
	"github.com/labstack/echo/v4"
)

// CourseHandler course completion tracking endpoints
type CourseHandler struct {
	CourseTracker domain.CourseTracker
	Validator     validate.Validator
}

// NewCourseHandler create a course controller instance
func NewCourseHandler(CourseTracker domain.CourseTracker, Validator validate.Validator) *CourseHandler {
	return &CourseHandler{
		CourseTracker: CourseTracker,
		Validator:     Validator,
	}
}

type coursePost struct {
	CourseName   string `json:"courseName" validate:"required"`
	TotalLessons int    `json:"totalLessons" validate:"min=0"`
}

func (ch *CourseHandler) bindCoursePost(c echo.Context) (*coursePost, error) {
	post := new(coursePost)
	if err := c.Bind(post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return nil, c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, "Failed to bind course entity").SetDetail(internal.Error()))
	}
	if errs := ch.Validator.Struct(post); errs != nil {
		return nil, c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", errs))
	}
	return post, nil
}

// HandleInitializeCourse create a zero-progress record unless one exists
func (ch *CourseHandler) HandleInitializeCourse(c echo.Context) (err error) {
	post, err := ch.bindCoursePost(c)
	if post == nil {
		return err
	}
	ctx := c.Request().Context()
	ch.CourseTracker.InitializeCourseProgress(ctx, c.Param("courseId"), post.CourseName, post.TotalLessons)
	progress, _ := ch.CourseTracker.GetCourseProgress(ctx, c.Param("courseId"))
	return c.JSON(http.StatusOK, progress)
}

// HandleCompleteLesson mark a lesson completed, reporting whether the course
// just finished
func (ch *CourseHandler) HandleCompleteLesson(c echo.Context) (err error) {
	post, err := ch.bindCoursePost(c)
	if post == nil {
		return err
	}
	ctx := c.Request().Context()
	completed := ch.CourseTracker.MarkLessonCompleted(ctx,
		c.Param("courseId"), post.CourseName, c.Param("lessonId"), post.TotalLessons)
	return c.JSON(http.StatusOK, map[string]bool{"courseCompleted": completed})
}

// HandleGetCourseProgress ...
func (ch *CourseHandler) HandleGetCourseProgress(c echo.Context) (err error) {
	progress, ok := ch.CourseTracker.GetCourseProgress(c.Request().Context(), c.Param("courseId"))
	if !ok {
		return c.NoContent(http.StatusNotFound)
	}
	return c.JSON(http.StatusOK, progress)
}

// HandleGetCoursePercentage ...
func (ch *CourseHandler) HandleGetCoursePercentage(c echo.Context) (err error) {
	percentage := ch.CourseTracker.GetCourseCompletionPercentage(c.Request().Context(), c.Param("courseId"))
	return c.JSON(http.StatusOK, map[string]int{"percentage": percentage})
}

// HandleResetCourseProgress ...
func (ch *CourseHandler) HandleResetCourseProgress(c echo.Context) (err error) {
	ch.CourseTracker.ResetCourseProgress(c.Request().Context(), c.Param("courseId"))
	return c.NoContent(http.StatusNoContent)
}
