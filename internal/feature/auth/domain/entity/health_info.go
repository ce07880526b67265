package entity

import "time"

// HealthInfo is the customer profile attached one-to-one to a User.
// Its Email is the address used for password reset delivery.
type HealthInfo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName    string    `gorm:"size:100" json:"first_name"`
	LastName     string    `gorm:"size:100" json:"last_name"`
	Gender       string    `gorm:"size:20" json:"gender"`
	Email        string    `gorm:"size:255;index" json:"email"`
	Address      string    `gorm:"size:500" json:"address"`
	PhoneNumber  string    `gorm:"size:30" json:"phone_number"`
	Age          int       `json:"age"`
	Weight       float64   `json:"weight"`
	Height       float64   `json:"height"`
	ProfileImage *string   `gorm:"size:255" json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the table name for GORM.
func (HealthInfo) TableName() string {
	return "health_info"
}

// HealthInfoUpdate lists the profile columns a partial update may change. nil fields are left untouched.
type HealthInfoUpdate struct {
	FirstName    *string
	LastName     *string
	Gender       *string
	Email        *string
	Address      *string
	PhoneNumber  *string
	Age          *int
	Weight       *float64
	Height       *float64
	ProfileImage *string
}

// Columns returns the column map for gorm Updates.
func (u HealthInfoUpdate) Columns() map[string]any {
	cols := map[string]any{}
	for col, v := range map[string]*string{
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"gender":        u.Gender,
		"email":         u.Email,
		"address":       u.Address,
		"phone_number":  u.PhoneNumber,
		"profile_image": u.ProfileImage,
	} {
		if v != nil {
			cols[col] = *v
		}
	}
	if u.Age != nil {
		cols["age"] = *u.Age
	}
	if u.Weight != nil {
		cols["weight"] = *u.Weight
	}
	if u.Height != nil {
		cols["height"] = *u.Height
	}
	return cols
}
