package models

import "time"

type User struct {
	BaseModel
	Name            string     `gorm:"not null" json:"name"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Password        string     `gorm:"not null" json:"-"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt"`

	// Relations
	Tokens     []Token    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Notes      []Note     `gorm:"foreignKey:AuthorID" json:"-"`
	Categories []Category `gorm:"foreignKey:AuthorID" json:"-"`
	Tags       []Tag      `gorm:"foreignKey:AuthorID" json:"-"`
}

// IsVerified reports whether the user has confirmed their email address.
func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}
