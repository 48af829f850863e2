package dto

// RegisterUserRequestBody defines a request body for RegisterUser service.
type RegisterUserRequestBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequestBody defines a request body for UpdateUser service.
type UpdateUserRequestBody struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}
