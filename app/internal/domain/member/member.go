package member

// Member is the public profile attached to a user account.
type Member struct {
	ID          int64
	UserID      int64
	DisplayName string
	Description *string
	City        *string
	Country     *string
}
