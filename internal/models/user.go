package models

import "time"

// User is the stored identity record. PasswordHash never leaves the
// credential store; outward results use UserView.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	Username     string    `gorm:"uniqueIndex:idx_users_username;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Name         string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// UserView is the public projection of a User.
type UserView struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// View strips the credential fields from u.
func (u *User) View() *UserView {
	return &UserView{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
	}
}
