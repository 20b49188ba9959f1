package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agrostore/internal/docstore"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	usersCollection = "users"
	minPasswordLen  = 6
)

// Claims are the session token claims: the user's document ID in Subject
// plus role and email for request-time authorization.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service provides account registration, login and token verification over
// the users collection.
type Service struct {
	store    docstore.Store
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewService creates a new auth Service signing tokens with secret.
func NewService(store docstore.Store, secret string, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Service{
		store:    store,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// Register creates a new account. Every registration gets the user role;
// the display name defaults to the local part of the email.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	if _, err := s.findByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if err != ErrUserNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	displayName := strings.SplitN(email, "@", 2)[0]
	uid, err := s.store.Create(ctx, usersCollection, map[string]any{
		"email":        email,
		"passwordHash": string(hash),
		"role":         RoleUser,
		"displayName":  displayName,
		"isActive":     true,
	})
	if err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user registered", zap.String("uid", uid), zap.String("email", email))
	return &User{
		UID:         uid,
		Email:       email,
		Role:        RoleUser,
		DisplayName: displayName,
		IsActive:    true,
	}, nil
}

// Login verifies the credentials and mints a session, including the
// role-based landing route the client should navigate to.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	doc, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(doc.String("passwordHash")), []byte(password)); err != nil {
		s.logger.Warn("login rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	user := userFromDoc(doc)
	token, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}

	redirect := RoutePublicHome
	if user.IsAdmin() {
		redirect = RouteAdminHome
	}

	s.logger.Info("user logged in",
		zap.String("uid", user.UID), zap.String("role", user.Role))
	return &Session{Token: token, User: user, Redirect: redirect}, nil
}

// Verify parses and validates a session token.
func (s *Service) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetUser fetches a user document by its ID.
func (s *Service) GetUser(ctx context.Context, uid string) (*User, error) {
	doc, err := s.store.GetByID(ctx, usersCollection, uid)
	if err != nil {
		if err == docstore.ErrNotFound {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user := userFromDoc(doc)
	return &user, nil
}

func (s *Service) mintToken(user User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:  user.Role,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// findByEmail scans the users collection for an email match. The store has
// no field query, so this walks the collection.
func (s *Service) findByEmail(ctx context.Context, email string) (docstore.Document, error) {
	docs, err := s.store.Query(ctx, usersCollection, docstore.FieldCreatedAt, false, 0)
	if err != nil {
		return docstore.Document{}, err
	}
	for _, doc := range docs {
		if doc.String("email") == email {
			return doc, nil
		}
	}
	return docstore.Document{}, ErrUserNotFound
}

func userFromDoc(doc docstore.Document) User {
	active, _ := doc.Fields["isActive"].(bool)
	return User{
		UID:         doc.ID,
		Email:       doc.String("email"),
		Role:        doc.String("role"),
		DisplayName: doc.String("displayName"),
		IsActive:    active,
		CreatedAt:   doc.Time(docstore.FieldCreatedAt),
	}
}
