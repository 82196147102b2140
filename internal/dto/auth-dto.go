package dto

import "gestion-system/internal/entities"

type LoginDTO struct {
	Usuario  string `json:"usuario" validate:"required,usuario_login"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponseDTO struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	Usuario      *entities.Usuario `json:"usuario"`
}

type ForgotPasswordDTO struct {
	Usuario string `json:"usuario" validate:"required"`
}

type VerifyCodeDTO struct {
	Usuario string `json:"usuario" validate:"required"`
	Codigo  string `json:"codigo" validate:"required,len=4,numeric"`
}

type ResetPasswordDTO struct {
	Usuario              string `json:"usuario" validate:"required"`
	Codigo               string `json:"codigo" validate:"required,len=4,numeric"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}
