package http

import (
	infra "github.com/bonecole/appcore/internal/infrastructure"
	"github.com/labstack/echo/v4"
)

func v1Endpoint(
	websocket *infra.Websocket,
	UserHandler *UserHandler,
	ProgressHandler *ProgressHandler,
	CourseHandler *CourseHandler,
	ConnectivityHandler *ConnectivityHandler,
	DownloadsHandler *DownloadsHandler,
	SessionHandler *SessionHandler,
	jwtMiddleware echo.MiddlewareFunc,
	refreshMiddleware echo.MiddlewareFunc,
	requestIDMiddleware echo.MiddlewareFunc,
	traceLoggerMiddleware echo.MiddlewareFunc,
) *endpoint {
	authed := []echo.MiddlewareFunc{jwtMiddleware, refreshMiddleware}
	return &endpoint{
		apiVersion:  "api/v1",
		middlewares: []echo.MiddlewareFunc{requestIDMiddleware, traceLoggerMiddleware},
		groups: []*apiGroup{
			{
				prefix: "/user",
				routes: []*route{
					{"POST", "/login", UserHandler.HandleSignIn, nil},
					{"PUT", "/sign-out", UserHandler.HandleSignOut, nil},
					{"GET", "/profile", UserHandler.HandleGetProfile, authed},
				},
			},
			{
				prefix:      "/progress",
				middlewares: authed,
				routes: []*route{
					{"GET", "", ProgressHandler.HandleGetAllProgress, nil},
					{"DELETE", "", ProgressHandler.HandleClearAllProgress, nil},
					{"GET", "/:lessonId", ProgressHandler.HandleGetProgress, nil},
					{"PUT", "/:lessonId", ProgressHandler.HandleSaveProgress, nil},
					{"DELETE", "/:lessonId", ProgressHandler.HandleDeleteProgress, nil},
				},
			},
			{
				prefix:      "/course",
				middlewares: authed,
				routes: []*route{
					{"POST", "/:courseId/init", CourseHandler.HandleInitializeCourse, nil},
					{"POST", "/:courseId/lesson/:lessonId/complete", CourseHandler.HandleCompleteLesson, nil},
					{"GET", "/:courseId/progress", CourseHandler.HandleGetCourseProgress, nil},
					{"GET", "/:courseId/percentage", CourseHandler.HandleGetCoursePercentage, nil},
					{"DELETE", "/:courseId/progress", CourseHandler.HandleResetCourseProgress, nil},
				},
			},
			{
				prefix:      "/connectivity",
				middlewares: authed,
				routes: []*route{
					{"GET", "", ConnectivityHandler.HandleGetState, nil},
					{"POST", "/simulator/toggle", ConnectivityHandler.HandleToggleSimulator, nil},
					{"PUT", "/simulator/state", ConnectivityHandler.HandleSetSimulatedState, nil},
				},
			},
			{
				prefix:      "/catalog",
				middlewares: authed,
				routes: []*route{
					{"GET", "/courses", DownloadsHandler.HandleGetCourses, nil},
					{"GET", "/books", DownloadsHandler.HandleGetBooks, nil},
				},
			},
			{
				prefix:      "/downloads",
				middlewares: authed,
				routes: []*route{
					{"GET", "", DownloadsHandler.HandleGetDownloads, nil},
					{"GET", "/storage", DownloadsHandler.HandleGetStorageStatus, nil},
					{"POST", "/course/:courseId", DownloadsHandler.HandleDownloadCourse, nil},
					{"DELETE", "/course/:courseId", DownloadsHandler.HandleDeleteCourse, nil},
					{"POST", "/course/:courseId/lesson/:lessonId", DownloadsHandler.HandleDownloadLesson, nil},
					{"DELETE", "/course/:courseId/lesson/:lessonId", DownloadsHandler.HandleDeleteLesson, nil},
					{"POST", "/book/:bookId", DownloadsHandler.HandleDownloadBook, nil},
					{"DELETE", "/book/:bookId", DownloadsHandler.HandleDeleteBook, nil},
				},
			},
			{
				prefix:      "/session",
				middlewares: authed,
				routes: []*route{
					{"POST", "/foreground", SessionHandler.HandleForeground, nil},
					{"POST", "/notifications/permissions", SessionHandler.HandleRequestPermissions, nil},
					{"GET", "/notifications/scheduled", SessionHandler.HandleGetScheduled, nil},
					{"POST", "/notifications/lesson/:lessonId", SessionHandler.HandleScheduleLessonReminder, nil},
					{"DELETE", "/notifications/lesson/:lessonId", SessionHandler.HandleCancelLessonReminder, nil},
				},
			},
			{
				prefix: "/ws",
				routes: []*route{
					{"GET", "/connectivity", websocket.WithHeartbeat(ConnectivityHandler.HandleStream), nil},
				},
			},
		},
	}
}
