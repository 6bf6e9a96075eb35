package http

import (
	"net/http"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/storage"
	"github.com/labstack/echo/v4"
)

// DownloadsHandler catalog browsing and offline content endpoints
type DownloadsHandler struct {
	Catalog         domain.Catalog
	DownloadManager domain.DownloadManager
	Estimator       *storage.Estimator
}

// NewDownloadsHandler create a downloads controller instance
func NewDownloadsHandler(
	Catalog domain.Catalog,
	DownloadManager domain.DownloadManager,
	Estimator *storage.Estimator,
) *DownloadsHandler {
	return &DownloadsHandler{
		Catalog:         Catalog,
		DownloadManager: DownloadManager,
		Estimator:       Estimator,
	}
}

// HandleGetCourses ...
func (dh *DownloadsHandler) HandleGetCourses(c echo.Context) (err error) {
	return c.JSON(http.StatusOK, dh.Catalog.Courses(c.Request().Context()))
}

// HandleGetBooks ...
func (dh *DownloadsHandler) HandleGetBooks(c echo.Context) (err error) {
	return c.JSON(http.StatusOK, dh.Catalog.Books(c.Request().Context()))
}

func (dh *DownloadsHandler) downloadResult(c echo.Context, err error) error {
	if err == nil {
		return c.NoContent(http.StatusAccepted)
	}
	switch err {
	case domain.ErrNotConnected:
		return c.JSON(http.StatusServiceUnavailable, NewRESTStandardError(http.StatusServiceUnavailable, err.Error()))
	case domain.ErrNoSuchCourse, domain.ErrNoSuchLesson, domain.ErrNoSuchBook:
		return c.JSON(http.StatusNotFound, NewRESTStandardError(http.StatusNotFound, err.Error()))
	}
	return err
}

// HandleDownloadCourse ...
func (dh *DownloadsHandler) HandleDownloadCourse(c echo.Context) (err error) {
	return dh.downloadResult(c, dh.DownloadManager.DownloadCourse(c.Request().Context(), c.Param("courseId")))
}

// HandleDownloadLesson ...
func (dh *DownloadsHandler) HandleDownloadLesson(c echo.Context) (err error) {
	return dh.downloadResult(c, dh.DownloadManager.DownloadLesson(c.Request().Context(), c.Param("courseId"), c.Param("lessonId")))
}

// HandleDownloadBook ...
func (dh *DownloadsHandler) HandleDownloadBook(c echo.Context) (err error) {
	return dh.downloadResult(c, dh.DownloadManager.DownloadBook(c.Request().Context(), c.Param("bookId")))
}

func (dh *DownloadsHandler) deleteResult(c echo.Context, err error) error {
	if err == nil {
		return c.NoContent(http.StatusNoContent)
	}
	switch err {
	case domain.ErrNoSuchCourse, domain.ErrNoSuchLesson, domain.ErrNoSuchBook:
		return c.JSON(http.StatusNotFound, NewRESTStandardError(http.StatusNotFound, err.Error()))
	}
	return err
}

// HandleDeleteCourse ...
func (dh *DownloadsHandler) HandleDeleteCourse(c echo.Context) (err error) {
	return dh.deleteResult(c, dh.DownloadManager.DeleteCourse(c.Request().Context(), c.Param("courseId")))
}

// HandleDeleteLesson ...
func (dh *DownloadsHandler) HandleDeleteLesson(c echo.Context) (err error) {
	return dh.deleteResult(c, dh.DownloadManager.DeleteLesson(c.Request().Context(), c.Param("courseId"), c.Param("lessonId")))
}

// HandleDeleteBook ...
func (dh *DownloadsHandler) HandleDeleteBook(c echo.Context) (err error) {
	return dh.deleteResult(c, dh.DownloadManager.DeleteBook(c.Request().Context(), c.Param("bookId")))
}

// HandleGetDownloads list locally held courses and books
func (dh *DownloadsHandler) HandleGetDownloads(c echo.Context) (err error) {
	ctx := c.Request().Context()
	courses := dh.DownloadManager.DownloadedCourses(ctx)
	books := dh.DownloadManager.DownloadedBooks(ctx)
	if courses == nil {
		courses = []*domain.DownloadedCourse{}
	}
	if books == nil {
		books = []*domain.DownloadedBook{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"courses": courses,
		"books":   books,
	})
}

// HandleGetStorageStatus estimate device storage usage from downloaded content
func (dh *DownloadsHandler) HandleGetStorageStatus(c echo.Context) (err error) {
	ctx := c.Request().Context()
	status := dh.Estimator.GetStorageStatus(
		dh.DownloadManager.DownloadedCourses(ctx),
		dh.DownloadManager.DownloadedBooks(ctx),
	)
	return c.JSON(http.StatusOK, status)
}
