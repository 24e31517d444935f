package types

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user, assigned at registration.
	// IDs are opaque strings; only uniqueness matters.
	ID string `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password"`
}
