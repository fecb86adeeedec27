package request

import "climatec_os/internal/usecase"

type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r SignUpRequest) ToInput() usecase.SignUpInput {
	return usecase.SignUpInput{Email: r.Email, Name: r.Name, Password: r.Password}
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
