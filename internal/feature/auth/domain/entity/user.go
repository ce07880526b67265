// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Roles stored in User.Role.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Statuses stored in User.Status.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// User represents a registered account and its credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// UserName is the login name and must be unique across all users.
	UserName string `gorm:"column:username;uniqueIndex;size:100;not null" json:"username"`

	// Password is the bcrypt hash. Plaintext is never stored.
	Password string `gorm:"size:255;not null" json:"-"`

	Role   string `gorm:"size:20;not null;default:customer" json:"role"`
	Status string `gorm:"size:20;not null;default:Active" json:"status"`

	// ResetToken and ResetTokenExpiry are both set while a password reset is
	// pending and both cleared when it is consumed.
	ResetToken       *string    `gorm:"size:64;index" json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	HealthInfo *HealthInfo `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"health_info,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (User) TableName() string {
	return "users"
}

// Email returns the address on the linked health profile, or "" when none is on file.
func (u *User) Email() string {
	if u.HealthInfo == nil {
		return ""
	}
	return u.HealthInfo.Email
}
