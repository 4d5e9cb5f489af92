package models

import "time"

// UserRole distinguishes plain buyers from creators and admins.
type UserRole string

const (
	RoleUser    UserRole = "USER"
	RoleCreator UserRole = "CREATOR"
	RoleAdmin   UserRole = "ADMIN"
)

// User represents an account on the platform. Identity fields (email,
// username) are immutable once the account exists.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Password  string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Role      UserRole  `json:"role" gorm:"type:varchar(20);default:USER"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatorProfile holds the display data of a creator account. It is created
// in the same transaction as its User during creator signup (1:1).
type CreatorProfile struct {
	ID                  string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID              string    `json:"user_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	FullName            string    `json:"full_name" gorm:"type:varchar(150);not null"`
	Timezone            string    `json:"timezone" gorm:"type:varchar(64);default:UTC"`
	CountryCode         *string   `json:"country_code,omitempty" gorm:"type:varchar(2)"`
	Bio                 *string   `json:"bio,omitempty" gorm:"type:text"`
	OnboardingCompleted bool      `json:"onboarding_completed" gorm:"default:false"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
