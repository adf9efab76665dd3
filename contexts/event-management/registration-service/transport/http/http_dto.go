package httptransport

type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type RegisterResponse struct {
	RegistrationID string `json:"registration_id"`
	EventID        string `json:"event_id"`
	Email          string `json:"email"`
	CreatedAt      string `json:"created_at"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
