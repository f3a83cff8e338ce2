package authapi

// RegisterForm is the form-encoded registration body.
type RegisterForm struct {
	Username string `form:"username" json:"username" validate:"required,max=20"`
	Email    string `form:"email" json:"email" validate:"required,email,min=5"`
	Password string `form:"password" json:"password" validate:"required,min=5,maxbytes=72"`
}

// LoginBody is the JSON login body.
type LoginBody struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LogoutResponse is the fixed logout body.
type LogoutResponse struct {
	Status string `json:"status"`
}
