package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// UserModel merepresentasikan tabel users di database
type UserModel struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement"                       json:"id"`
	Username  string  `gorm:"column:username;type:varchar(50);uniqueIndex;not null"    json:"username"`
	Email     string  `gorm:"column:email;type:varchar(255);uniqueIndex;not null"      json:"email"`
	Password  string  `gorm:"column:password;not null"                                 json:"-"`
	FirstName *string `gorm:"column:first_name;type:varchar(50)"                       json:"firstName"`
	LastName  *string `gorm:"column:last_name;type:varchar(50)"                        json:"lastName"`
	Active    bool    `gorm:"column:active;not null;index"                             json:"active"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"       json:"updatedAt"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// PublicColumns is every column except the password hash.
var PublicColumns = []string{
	"id", "username", "email", "first_name", "last_name", "active", "created_at", "updated_at",
}

// SetPassword stores the bcrypt hash of plain.
func (u *UserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}
