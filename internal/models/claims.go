package models

import "github.com/golang-jwt/jwt/v5"

// Roles issued by the identity provider
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// UserClaims are the claims carried by tokens from the identity provider.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
