package models

import (
	"gorm.io/gorm"
)

type Vehicle struct {
	gorm.Model
	LicensePlate string `json:"license_plate" gorm:"unique"`
	VehicleModel string `json:"model" gorm:"column:model"`
	InService    bool   `json:"in_service" gorm:"default:true"`
}
