package models

// User resource owner model. The authorization server looks users up and
// never mutates them.
type User struct {
	ID string
}

// GetID user id
func (u *User) GetID() string {
	return u.ID
}
