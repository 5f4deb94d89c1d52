package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

type User struct {
	ID            string
	Email         string
	Password      *string // nil for Google-only accounts, bcrypt hash otherwise
	Role          Role
	EmailVerified bool
	GoogleID      *string

	VerificationToken *string

	ResetToken       *string
	ResetTokenExpiry *time.Time

	EmailLoginCode       *string // bcrypt hash of the 6-digit code
	EmailLoginCodeExpiry *time.Time

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	Profile *Profile
}

type Profile struct {
	ID       string
	UserID   string
	Name     *string
	Bio      *string
	Avatar   *string
	Website  *string
	Location *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
