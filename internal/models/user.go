// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

type User struct {
	BaseModel
	UserName     string   `json:"userName" gorm:"size:100;not null"`
	Email        string   `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string   `json:"-" gorm:"column:password;size:255;not null"`
	Role         UserRole `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	ProfileImage string   `json:"profileImage" gorm:"size:1024"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// UserSummary is the identity shape returned by the auth endpoints.
type UserSummary struct {
	ID           string   `json:"id,omitempty"`
	UserName     string   `json:"userName"`
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	ProfileImage string   `json:"profileImage,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:           u.ID.String(),
		UserName:     u.UserName,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
	}
}
