package cqrs

// CreateUserCommand carries a record body exactly as the client sent it.
type CreateUserCommand struct {
	Fields map[string]any
}

// UpdateUserCommand sets only the keys present in Fields.
type UpdateUserCommand struct {
	UserID string
	Fields map[string]any
}

type DeleteUserCommand struct {
	UserID string
}
