package model

// Role names accepted in the `role` field of a user record. Riders
// register as RoleUser; RoleAdmin is granted afterwards by another
// admin through the role-update operation.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is an identity record as stored in the `users` collection.
// The json tags match the persisted layout one-to-one, so the same
// struct is used for storage and for the session snapshot.
//
// Fields:
//
//	ID        – unique identifier (e.g. "user_3f2a9c...").
//	FirstName – given name.
//	LastName  – family name.
//	Email     – unique address, compared case-sensitively as stored.
//	Phone     – contact number, free-form.
//	Password  – plaintext credential secret. Stored as-is; login is an
//	            exact match against this value (see service.Authenticate).
//	Role      – RoleUser or RoleAdmin.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password,omitempty"`
	Role      string `json:"role"`
}

// Sanitized returns a copy of the user with the credential secret
// blanked. Handlers use it for every response body so the secret
// never leaves the service.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }
