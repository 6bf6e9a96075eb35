package http

import (
	"net/http"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/auth"
	"github.com/bonecole/appcore/internal/infrastructure/validate"
	"github.com/labstack/echo/v4"
)

// UserHandler session related operations
type UserHandler struct {
	JWTUtil     *auth.JWTUtil
	UserUseCase domain.UserUseCase
	Validator   validate.Validator
}

// NewUserHandler create an user controller instance
func NewUserHandler(
	JWTUtil *auth.JWTUtil,
	UserUseCase domain.UserUseCase,
	Validator validate.Validator,
) *UserHandler {
	return &UserHandler{
		JWTUtil:     JWTUtil,
		UserUseCase: UserUseCase,
		Validator:   Validator,
	}
}

type credentialPost struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleSignIn ...
func (uh *UserHandler) HandleSignIn(c echo.Context) (err error) {
	post := new(credentialPost)
	if err = c.Bind(post); err != nil {
		internal := err.(*echo.HTTPError).Internal
		return c.JSON(http.StatusUnprocessableEntity,
			NewRESTStandardError(http.StatusUnprocessableEntity, "Failed to bind credentials").SetDetail(internal.Error()))
	}
	if errs := uh.Validator.Struct(post); errs != nil {
		return c.JSON(http.StatusBadRequest,
			NewRESTValidationError(http.StatusBadRequest, "Failed to validate fields", errs))
	}

	profile, tokenStr, err := uh.UserUseCase.SignIn(c.Request().Context(), post.Username, post.Password)
	if err != nil {
		if err == domain.ErrEmptyCredential {
			return c.JSON(http.StatusUnauthorized, NewRESTStandardError(http.StatusUnauthorized, err.Error()))
		}
		return err
	}
	uh.JWTUtil.SetClientToken(c, tokenStr)
	return c.JSON(http.StatusOK, profile)
}

// HandleSignOut ...
func (uh *UserHandler) HandleSignOut(c echo.Context) (err error) {
	ju := uh.JWTUtil

	tokenStr, err := ju.ExtractToken(c)
	if err != nil {
		return c.NoContent(http.StatusNoContent)
	}
	ju.ClearClientToken(c)
	if err := uh.UserUseCase.SignOut(c.Request().Context(), tokenStr); err != nil {
		return c.NoContent(http.StatusUnauthorized)
	}
	return c.NoContent(http.StatusNoContent)
}

// HandleGetProfile ...
func (uh *UserHandler) HandleGetProfile(c echo.Context) (err error) {
	profile, ok := uh.UserUseCase.Profile(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusNotFound, NewRESTStandardError(http.StatusNotFound, "No active session"))
	}
	return c.JSON(http.StatusOK, profile)
}
