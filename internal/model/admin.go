package model

import "time"

type Admin struct {
	ID        uint64 `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;size:32;not null"`
	Password  string `gorm:"size:255;not null"`
	Role      string `gorm:"size:16;not null;default:'admin'"` // superadmin / admin
	CreatedBy *uint64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Admin) TableName() string { return "admins" }
