package httpdto

// UserDTO represents a user in API responses. The password hash is never
// part of the wire shape.
type UserDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}
