package user

type User struct {
	ID           int64
	Email        string
	DisplayName  string
	PasswordHash string
}
