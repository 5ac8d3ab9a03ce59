package models

// RegisterRequest is the body of POST /users.
// Password is plaintext and is hashed before anything is persisted.
type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=5,alphanum"`
	Password    string `json:"password" validate:"required,maxbytes=72"`
	Email       string `json:"email" validate:"required,email"`
	DateOfBirth *Date  `json:"date_of_birth,omitempty"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateUserRequest is the body of PUT /users/{username}.
// Only non-nil fields are validated and applied (partial update support).
type UpdateUserRequest struct {
	Username    *string `json:"username,omitempty" validate:"omitnil,min=5,alphanum"`
	Password    *string `json:"password,omitempty" validate:"omitnil,min=1,maxbytes=72"`
	Email       *string `json:"email,omitempty" validate:"omitnil,email"`
	DateOfBirth *Date   `json:"date_of_birth,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (r UpdateUserRequest) IsEmpty() bool {
	return r.Username == nil && r.Password == nil && r.Email == nil && r.DateOfBirth == nil
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ErrorResponse is the JSON body of every failed request.
// Fields is filled only for validation failures, keyed by JSON field name.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// BuildInfoResponse is returned by GET /version.
type BuildInfoResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
