package user

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/auth"
	"github.com/bonecole/appcore/internal/infrastructure/driver"
	"go.elastic.co/apm"
	"go.uber.org/zap"
)

// Session slots in the kv store.
const (
	SessionTokenKey = "sessionToken"
	UserProfileKey  = "userProfile"
)

// Demo credentials; any other non-empty pair also signs in, with a generic
// profile. This is behavior parity with the mock login, not a security
// boundary.
const (
	demoStudentID = "eleve1"
	demoPassword  = "1234"
)

// UseCase mock authentication: any non-empty credential pair yields a fixed
// demo profile and a signed session token.
type UseCase struct {
	jwtUtil *auth.JWTUtil
	kv      driver.KeyValueDB
	logger  *zap.Logger
}

var _ domain.UserUseCase = &UseCase{}

// NewUseCase create a user use case
func NewUseCase(jwtUtil *auth.JWTUtil, kv driver.KeyValueDB, logger *zap.Logger) *UseCase {
	return &UseCase{jwtUtil: jwtUtil, kv: kv, logger: logger}
}

// SignIn implement domain.UserUseCase
func (u *UseCase) SignIn(ctx context.Context, studentID, password string) (*domain.UserProfile, string, error) {
	span, ctx := apm.StartSpan(ctx, "UseCase.SignIn", "service")
	defer span.End()

	if strings.TrimSpace(studentID) == "" || strings.TrimSpace(password) == "" {
		return nil, "", domain.ErrEmptyCredential
	}

	profile := profileFor(studentID, password)
	tokenStr, err := u.jwtUtil.GenerateTokenStr(profile)
	if err != nil {
		return nil, "", err
	}

	if err := u.kv.Set(ctx, SessionTokenKey, tokenStr); err != nil {
		return nil, "", err
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return nil, "", err
	}
	if err := u.kv.Set(ctx, UserProfileKey, string(data)); err != nil {
		return nil, "", err
	}
	return profile, tokenStr, nil
}

// SignOut implement domain.UserUseCase
func (u *UseCase) SignOut(ctx context.Context, tokenStr string) error {
	if token, err := u.jwtUtil.Validate(tokenStr); err == nil {
		// keep the token blacklisted for its remaining lifetime
		if err := u.kv.SetEX(ctx, tokenStr, "", token.TimeRemaining()); err != nil {
			return err
		}
	}
	if err := u.kv.MultiRemove(ctx, []string{SessionTokenKey, UserProfileKey}); err != nil {
		return err
	}
	return nil
}

// Profile implement domain.UserUseCase
func (u *UseCase) Profile(ctx context.Context) (*domain.UserProfile, bool) {
	data, err := u.kv.Get(ctx, UserProfileKey)
	if err != nil {
		if !errors.Is(err, driver.ErrKeyNotFound) {
			u.logger.Error("Failed to read user profile", zap.Error(err))
		}
		return nil, false
	}
	profile := new(domain.UserProfile)
	if err := json.Unmarshal([]byte(data), profile); err != nil {
		u.logger.Error("Failed to decode user profile", zap.Error(err))
		return nil, false
	}
	return profile, true
}

func profileFor(studentID, password string) *domain.UserProfile {
	if studentID == demoStudentID && password == demoPassword {
		return &domain.UserProfile{
			StudentName: "Amara",
			SchoolName:  "Le Grand Lycée",
			Grade:       "10",
			StudentID:   studentID,
		}
	}
	return &domain.UserProfile{
		StudentName: "Élève Invité",
		SchoolName:  "Lycée de Démonstration",
		Grade:       "10",
		StudentID:   studentID,
	}
}
