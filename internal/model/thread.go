package model

import "time"

type Thread struct {
	ID           uint64 `gorm:"primaryKey"`
	ThreadNumber int    `gorm:"not null"` // 串的分部编号（例：闇金情報スレ Part3 → 3）
	Title        string `gorm:"size:200;not null"`
	PostCount    int    `gorm:"not null;default:0"`
	IsArchived   bool   `gorm:"not null;default:false"` // 到 1000 楼置 true，之后禁止写入
	CreatedAt    time.Time
	UpdatedAt    time.Time `gorm:"index:idx_threads_updated_at"`
}

func (Thread) TableName() string { return "threads" }
