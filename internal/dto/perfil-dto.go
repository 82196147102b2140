package dto

type UpdatePerfilDTO struct {
	NombreCompleto string  `json:"nombre_completo" validate:"required,min=3,max=120"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
}

type ChangePasswordDTO struct {
	PasswordActual       string `json:"password_actual" validate:"required"`
	Password             string `json:"password" validate:"required,min=6,nefield=PasswordActual"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
}
