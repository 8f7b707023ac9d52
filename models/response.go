package models

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// AuthResponse is the envelope variant the auth endpoints answer with.
type AuthResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	User        *User  `json:"user,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
	TokenType   string `json:"token_type"`
}
