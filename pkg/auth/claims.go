package auth

import (
	"github.com/avdiagram/catalog-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims is the typed JWT claim set carried by a session token.
type AccessTokenClaims struct {
	UserID   uuid.UUID  `json:"uid"`
	Username string     `json:"username"`
	Role     enums.Role `json:"role"`
	jwt.RegisteredClaims
}

// AccessTokenPayload names the inputs used to mint a token.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Username string
	Role     enums.Role
	JTI      string
}
