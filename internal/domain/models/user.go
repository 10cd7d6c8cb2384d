// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Subscription plans.
const (
	PlanFree = "free"
	PlanPro  = "pro"
)

// User represents an account that owns spaces and content items.
//
// Email is the unique login identifier (stored lowercased). Users are
// created at signup or on first Google OAuth login and are never
// hard-deleted.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	AuthMethod string             `bson:"auth_method,omitempty" json:"auth_method,omitempty"` // "otp" | "google"
	Role       string             `bson:"role" json:"role"` // user | admin
	Plan       string             `bson:"plan" json:"plan"` // free | pro
	Status     string             `bson:"status,omitempty" json:"status,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsPro reports whether the user is on the pro plan.
func (u User) IsPro() bool {
	return u.Plan == PlanPro
}
