package model

// User is a named identity. No behavior is attached yet; it exists so
// boards and cards can grow ownership later without a schema change.
type User struct {
	id   string
	name string
}

// NewUser creates a user
func NewUser(id, name string) *User {
	return &User{id: id, name: name}
}

// ID returns the user's immutable id
func (u *User) ID() string {
	return u.id
}

// Name returns the user's name
func (u *User) Name() string {
	return u.name
}

// SetName renames the user
func (u *User) SetName(name string) {
	u.name = name
}
