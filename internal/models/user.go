package models

import "time"

// Role distinguishes property administrators from tenants.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTenant Role = "tenant"
)

// User is a login account. PasswordHash never leaves the service.
type User struct {
	CreatedAt    time.Time `json:"created_at"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ID           int64     `json:"id"`
}
