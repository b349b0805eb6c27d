package dto

// RegisterRequest alta de cuenta desde el formulario de registro.
type RegisterRequest struct {
	Email    string   `json:"email"`
	FullName string   `json:"fullName"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse respuesta de register/login/refresh con la forma que consume el panel.
type AuthResponse struct {
	IsSuccess    bool   `json:"isSuccess"`
	Message      string `json:"message"`
	Token        string `json:"token,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// RefreshTokenRequest renovación de sesión: el token puede estar vencido pero debe estar firmado.
type RefreshTokenRequest struct {
	Email        string `json:"email"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// ForgotPasswordRequest solicitud de restablecimiento.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest restablece la contraseña con el token enviado por correo.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// UserDetail datos de la cuenta (sin hash).
type UserDetail struct {
	ID                   string   `json:"id"`
	FullName             string   `json:"fullName"`
	Email                string   `json:"email"`
	Roles                []string `json:"roles"`
	PhoneNumber          string   `json:"phoneNumber,omitempty"`
	PhoneNumberConfirmed bool     `json:"phoneNumberConfirmed"`
	AccessFailedCount    int      `json:"accessFailedCount"`
}

// RoleResponse rol con número de usuarios.
type RoleResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TotalUsers int    `json:"totalUsers"`
}

// CreateRoleRequest alta de rol.
type CreateRoleRequest struct {
	RoleName string `json:"roleName"`
}

// AssignRoleRequest asigna un rol existente a un usuario.
type AssignRoleRequest struct {
	UserID string `json:"userId"`
	RoleID string `json:"roleId"`
}
