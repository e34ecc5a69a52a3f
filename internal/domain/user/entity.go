package user

// User represents the users table. PasswordHash holds the bcrypt digest;
// the plaintext is never persisted. Records are immutable once created.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
}
