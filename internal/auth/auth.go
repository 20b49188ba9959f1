package auth

import (
	"errors"
	"time"
)

// Roles a user document can carry. Registration always assigns RoleUser;
// admins are promoted out of band.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Landing route names per role, the redirect decision made after login.
const (
	RouteAdminHome  = "products"
	RoutePublicHome = "public-products"
)

var (
	// ErrUserNotFound is returned when no account exists for an email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned on a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when registering an email twice.
	ErrEmailTaken = errors.New("email already in use")
	// ErrWeakPassword is returned for passwords under the minimum length.
	ErrWeakPassword = errors.New("password too weak")
	// ErrInvalidToken is returned for expired or malformed session tokens.
	ErrInvalidToken = errors.New("invalid session token")
)

// Mensajes de error amigables para la UI
var errorMessages = map[error]string{
	ErrUserNotFound:       "Usuario no encontrado",
	ErrInvalidCredentials: "Credenciales Invalidas",
	ErrEmailTaken:         "El email ya está en uso",
	ErrWeakPassword:       "La contraseña es demasiado débil",
}

// Message maps an auth error to its user-facing text, falling back to a
// generic credentials message.
func Message(err error) string {
	for sentinel, msg := range errorMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return "Credenciales Invalidas"
}

// User is an account document as stored in the users collection.
type User struct {
	UID         string    `json:"uid"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session is the result of a successful login: the signed token, the user
// it identifies, and the role-based landing route for the client.
type Session struct {
	Token    string `json:"token"`
	User     User   `json:"user"`
	Redirect string `json:"redirect"`
}
