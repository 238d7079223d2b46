package models

import "gorm.io/gorm"

type Recipe struct {
	gorm.Model
	Name         string `gorm:"not null"`
	Description  string
	IsVegan      bool   `gorm:"not null;default:false"`
	IsGlutenFree bool   `gorm:"not null;default:false"`
	Items        []Item `gorm:"many2many:recipe_items;"`
}
