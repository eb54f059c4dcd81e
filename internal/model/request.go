package model

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ContactNo string `json:"contact_no"`
	Role      string `json:"role"`
	Timezone  string `json:"timezone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest carries the mutable profile fields. Empty fields
// are left unchanged.
type UpdateProfileRequest struct {
	Name      string `json:"name"`
	ContactNo string `json:"contact_no"`
	Timezone  string `json:"timezone"`
}
