package models

import "gorm.io/gorm"

type Item struct {
	gorm.Model
	Name        string  `gorm:"not null"`
	Price       float64 `gorm:"not null"`
	Calorie     int     `gorm:"not null"`
	Vegan       bool    `gorm:"not null"`
	GlutenFree  bool    `gorm:"not null"`
	Discount    float64 `gorm:"not null;default:0"`
	Picture     string
	Sales       int `gorm:"not null;default:0"`
	Description string
}
