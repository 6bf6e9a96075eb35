package user

import (
	"context"
	"testing"
	"time"

	"github.com/bonecole/appcore/internal/domain"
	"github.com/bonecole/appcore/internal/infrastructure/auth"
	"github.com/bonecole/appcore/internal/infrastructure/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUseCase() (*UseCase, driver.KeyValueDB) {
	jwtUtil := auth.NewJWTUtil("HS256", "test-secret", "app_token", time.Hour)
	kv := driver.NewMemoryStore()
	return NewUseCase(jwtUtil, kv, zap.NewNop()), kv
}

func TestSignInDemoStudent(t *testing.T) {
	ctx := context.Background()
	usecase, kv := newTestUseCase()

	profile, tokenStr, err := usecase.SignIn(ctx, "eleve1", "1234")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	assert.Equal(t, "Amara", profile.StudentName)
	assert.Equal(t, "Le Grand Lycée", profile.SchoolName)
	assert.Equal(t, "10", profile.Grade)
	assert.Equal(t, "eleve1", profile.StudentID)

	stored, err := kv.Get(ctx, SessionTokenKey)
	require.NoError(t, err)
	assert.Equal(t, tokenStr, stored)
}

func TestSignInAnyNonEmptyCredential(t *testing.T) {
	ctx := context.Background()
	usecase, _ := newTestUseCase()

	profile, _, err := usecase.SignIn(ctx, "autre", "motdepasse")
	require.NoError(t, err)
	assert.Equal(t, "Élève Invité", profile.StudentName)
	assert.Equal(t, "Lycée de Démonstration", profile.SchoolName)
	assert.Equal(t, "autre", profile.StudentID)
}

func TestSignInEmptyCredential(t *testing.T) {
	ctx := context.Background()
	usecase, _ := newTestUseCase()

	cases := []struct{ id, password string }{
		{"", "1234"},
		{"eleve1", ""},
		{"   ", "1234"},
		{"", ""},
	}
	for _, tc := range cases {
		_, _, err := usecase.SignIn(ctx, tc.id, tc.password)
		assert.Equal(t, domain.ErrEmptyCredential, err)
	}
}

func TestProfilePersistedAcrossRestart(t *testing.T) {
	ctx := context.Background()
	usecase, kv := newTestUseCase()

	_, _, err := usecase.SignIn(ctx, "eleve1", "1234")
	require.NoError(t, err)

	// a second use case over the same store sees the session
	jwtUtil := auth.NewJWTUtil("HS256", "test-secret", "app_token", time.Hour)
	revived := NewUseCase(jwtUtil, kv, zap.NewNop())
	profile, ok := revived.Profile(ctx)
	require.True(t, ok)
	assert.Equal(t, "Amara", profile.StudentName)
}

func TestProfileWithoutSession(t *testing.T) {
	usecase, _ := newTestUseCase()
	_, ok := usecase.Profile(context.Background())
	assert.False(t, ok)
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()
	usecase, kv := newTestUseCase()

	_, tokenStr, err := usecase.SignIn(ctx, "eleve1", "1234")
	require.NoError(t, err)

	require.NoError(t, usecase.SignOut(ctx, tokenStr))

	// the token is blacklisted for its remaining lifetime
	blacklisted, err := kv.Exists(ctx, tokenStr)
	require.NoError(t, err)
	assert.True(t, blacklisted)

	_, ok := usecase.Profile(ctx)
	assert.False(t, ok)
	ok, _ = kv.Exists(ctx, SessionTokenKey)
	assert.False(t, ok)
}
