package domain

// User is a registered entry in the user directory.
//
// Users are created once and never mutated or deleted. The identifier is
// assigned by the store at insertion time and equals the 1-based position
// of the user in insertion order.
type User struct {
	Identifier int    `json:"identifier"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

// NewUser creates a User with the given identifier, name and email.
// No validation is performed: empty names and emails are accepted and
// email format is not checked.
func NewUser(identifier int, name, email string) *User {
	return &User{
		Identifier: identifier,
		Name:       name,
		Email:      email,
	}
}

// ToMap converts the user to a plain key/value mapping with the keys
// identifier, name and email.
func (u User) ToMap() map[string]any {
	return map[string]any{
		"identifier": u.Identifier,
		"name":       u.Name,
		"email":      u.Email,
	}
}
