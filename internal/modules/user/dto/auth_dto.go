package dto

type SignUpInput struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Username string `json:"username" binding:"required,max=150"`
}

// SignUpResponse echoes the accepted pair; the confirmation code itself
// only travels by email.
type SignUpResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type TokenInput struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required,max=100"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
