package model

import "time"

const (
	RoleUser  = "USER"
	RoleOwner = "OWNER"
)

const DefaultTimezone = "UTC"

// User is the durable account record. PasswordHash never leaves the
// service layer; boundary-crossing code uses Profile instead.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	ContactNo    string    `json:"contact_no,omitempty"`
	Timezone     string    `json:"timezone"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the sanitized projection of a User returned to callers.
type Profile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ContactNo string    `json:"contact_no,omitempty"`
	Timezone  string    `json:"timezone"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		ContactNo: u.ContactNo,
		Timezone:  u.Timezone,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// AuthClaims are the identity facts decoded out of a verified token.
type AuthClaims struct {
	UserID string `json:"sub"`
	Role   string `json:"role"`
}

type TokenPair struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	TokenType    string  `json:"token_type"`
	ExpiresIn    int64   `json:"expires_in"`
	User         Profile `json:"user"`
}

type ProfileList struct {
	Users []Profile `json:"users"`
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleOwner
}
