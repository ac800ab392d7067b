package cqrs

// ListUsersQuery fetches every user record.
type ListUsersQuery struct{}

// SearchUsersQuery fetches users whose searchable fields contain Term.
// A blank Term behaves like ListUsersQuery.
type SearchUsersQuery struct {
	Term string
}

// GetUserQuery fetches a single user by ID.
type GetUserQuery struct {
	UserID string
}

// CountUsersQuery counts users, optionally only those flagged active.
type CountUsersQuery struct {
	ActiveOnly bool
}
