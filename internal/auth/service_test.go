package auth

import (
	"context"
	"testing"
	"time"

	"agrostore/internal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*Service, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	return NewService(store, "test-secret", time.Hour, zaptest.NewLogger(t)), store
}

func seedAdmin(t *testing.T, store *docstore.MemoryStore, email, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	uid, err := store.Create(context.Background(), "users", map[string]any{
		"email":        email,
		"passwordHash": string(hash),
		"role":         RoleAdmin,
		"displayName":  "admin",
		"isActive":     true,
	})
	require.NoError(t, err)
	return uid
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuth(t)

	user, err := svc.Register(context.Background(), "Maria@Example.com", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.Equal(t, RoleUser, user.Role, "registration always assigns the user role")
	assert.Equal(t, "maria", user.DisplayName)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.UID)
}

func TestRegister_Rejections(t *testing.T) {
	svc, _ := newTestAuth(t)
	_, err := svc.Register(context.Background(), "maria@example.com", "secreto123")
	require.NoError(t, err)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "maria@example.com", "otraclave")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
	t.Run("weak password", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "otro@example.com", "123")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
	t.Run("invalid email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "not-an-email", "secreto123")
		assert.Error(t, err)
	})
}

func TestLogin_UserRedirect(t *testing.T) {
	svc, _ := newTestAuth(t)
	_, err := svc.Register(context.Background(), "maria@example.com", "secreto123")
	require.NoError(t, err)

	session, err := svc.Login(context.Background(), "maria@example.com", "secreto123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, RoutePublicHome, session.Redirect)
	assert.Equal(t, RoleUser, session.User.Role)
}

func TestLogin_AdminRedirect(t *testing.T) {
	svc, store := newTestAuth(t)
	seedAdmin(t, store, "admin@example.com", "secreto123")

	session, err := svc.Login(context.Background(), "admin@example.com", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, RouteAdminHome, session.Redirect)
	assert.True(t, session.User.IsAdmin())
}

func TestLogin_Rejections(t *testing.T) {
	svc, _ := newTestAuth(t)
	_, err := svc.Register(context.Background(), "maria@example.com", "secreto123")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "maria@example.com", "incorrecta")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nadie@example.com", "secreto123")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestVerify(t *testing.T) {
	svc, store := newTestAuth(t)
	uid := seedAdmin(t, store, "admin@example.com", "secreto123")

	session, err := svc.Login(context.Background(), "admin@example.com", "secreto123")
	require.NoError(t, err)

	claims, err := svc.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, uid, claims.Subject)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestVerify_Rejections(t *testing.T) {
	svc, store := newTestAuth(t)
	seedAdmin(t, store, "admin@example.com", "secreto123")

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("wrong secret", func(t *testing.T) {
		other := NewService(store, "different-secret", time.Hour, zaptest.NewLogger(t))
		session, err := other.Login(context.Background(), "admin@example.com", "secreto123")
		require.NoError(t, err)

		_, err = svc.Verify(session.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("expired token", func(t *testing.T) {
		expired := NewService(store, "test-secret", -time.Minute, zaptest.NewLogger(t))
		session, err := expired.Login(context.Background(), "admin@example.com", "secreto123")
		require.NoError(t, err)

		_, err = svc.Verify(session.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "El email ya está en uso", Message(ErrEmailTaken))
	assert.Equal(t, "Usuario no encontrado", Message(ErrUserNotFound))
	assert.Equal(t, "Credenciales Invalidas", Message(assert.AnError))
}
