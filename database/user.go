package database

import (
	"errors"
	"net/mail"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	Model
	Name         string `json:"name"`
	Email        string `json:"email" gorm:"unique"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

func RegisterUser(
	DB *gorm.DB,
	name string,
	email string,
	password []byte,
) (*User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if _, err = mail.ParseAddress(email); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}

	user := User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if r := DB.Create(&user); r.Error != nil {
		return nil, r.Error
	}

	return &user, nil
}

// CreateUser returns the existing user for email if there is one, so the
// bootstrap user can be applied on every start.
func CreateUser(DB *gorm.DB, name string, email string, password []byte, isAdmin bool) (*User, error) {
	var existing User
	err := DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := RegisterUser(DB, name, email, password)
	if err != nil {
		return nil, err
	}
	if isAdmin {
		user.IsAdmin = true
		if err := DB.Model(user).Update("is_admin", true).Error; err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func GetUserByEmail(DB *gorm.DB, email string) (*User, error) {
	var user User
	if err := DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}
