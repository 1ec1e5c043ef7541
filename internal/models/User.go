package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // "client", "driver", "supervisor", "admin"

	// Actor-specific relations
	Driver *Driver           `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"driver,omitempty"`
	Points []CollectionPoint `gorm:"foreignKey:ClientID" json:"points,omitempty"`
}
