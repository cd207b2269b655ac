package auth

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the only role the portal issues.
const RoleAdmin = "admin"

// Claims are the claims of an admin session token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
