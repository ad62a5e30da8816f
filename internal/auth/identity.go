package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cirogiorgini/turnero-client/internal/api"
)

// Roles as the backend reports them.
const (
	RoleClient = "cliente"
	RoleBarber = "barbero"
	RoleAdmin  = "admin"
)

// Identity is the logged-in user as far as this client cares: the bearer
// token plus the display fields that came with it. The backend stays the
// authority on what the token is allowed to do.
type Identity struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func FromUser(u api.User) Identity {
	return Identity{
		Token:    u.Token,
		UserID:   u.ID,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}

func (i Identity) LoggedIn() bool { return i.Token != "" }

func (i Identity) IsBarber() bool { return i.Role == RoleBarber }

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

type tokenClaims struct {
	ID   string `json:"id"`
	Role string `json:"rol"`
	jwt.RegisteredClaims
}

// TokenClaims decodes the user id and role embedded in the backend JWT. The
// signature is not verified here; the claims are used for display and local
// routing only, never for authorization.
func TokenClaims(token string) (userID, role string, err error) {
	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", "", fmt.Errorf("auth: decode token: %w", err)
	}
	if claims.ID == "" {
		return "", "", errors.New("auth: token has no user id claim")
	}
	return claims.ID, claims.Role, nil
}
