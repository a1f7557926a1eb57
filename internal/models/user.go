package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a registered member of the board. Email is the identity key.
type User struct {
	ID          string     `gorm:"primaryKey;size:24" json:"_id"`
	Name        string     `gorm:"not null" json:"name"`
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	AvatarURL   string     `json:"avatarUrl,omitempty"`
	StartYear   *int       `json:"startYear,omitempty"`
	PassOutYear *int       `json:"passOutYear,omitempty"`
	Department  string     `json:"department,omitempty"`
	RollNumber  string     `json:"rollNumber,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns an identifier and normalizes the email.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// SavedPost is one entry of a user's saved set.
// PostID is a weak reference: there is no foreign key, so deleting a post leaves the row dangling
// until the reconciliation sweep removes it.
type SavedPost struct {
	UserID    string    `gorm:"primaryKey;size:24"`
	PostID    string    `gorm:"primaryKey;size:24"`
	CreatedAt time.Time `gorm:"index"`
}

// SavedSet is a user's raw saved references as read for reconciliation.
type SavedSet struct {
	UserID  string
	PostIDs []string
}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
