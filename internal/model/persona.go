package model

import "time"

// Persona 管理员伪装成普通住民用的固定人格。
// 发帖的 UserID 由 persona 编号按日导出，和普通用户无法区分。
type Persona struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"size:64;not null"`
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (Persona) TableName() string { return "personas" }
