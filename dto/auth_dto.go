package dto

type RegisterDTO struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshDTO carries the refresh token in the request body. The field is
// not tagged required: a missing token must map to 401, not a generic 400.
type RefreshDTO struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutDTO struct {
	RefreshToken string `json:"refreshToken"`
}
