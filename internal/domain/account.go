package domain

// Access levels for staff-facing endpoints.
const (
	LevelAdmin = "ADMIN"
	LevelStaff = "STAFF"
)

// AccessAccount gates the validation and admin endpoints.
// PK: username.
type AccessAccount struct {
	Username     string `json:"username" dynamodbav:"username"`
	PasswordHash string `json:"-" dynamodbav:"password_hash"`
	Level        string `json:"level" dynamodbav:"level"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
