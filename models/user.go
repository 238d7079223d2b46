package models

import "gorm.io/gorm"

const (
	RoleCustomer = "customer"
	RoleEmployee = "employee"
)

type User struct {
	gorm.Model
	Username       string `gorm:"unique;not null"`
	Email          string `gorm:"not null"`
	Password       string `gorm:"not null"`
	ProfilePicture string
	Role           string `gorm:"not null"`
	CartItems      []CartItem
	Orders         []Order
	LoginTokens    []LoginToken
}
