package models

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	Profile *Profile `gorm:"foreignKey:ID;references:ID" json:"profile,omitempty"`
}
