package model

import "time"

type BannedIP struct {
	ID        uint64 `gorm:"primaryKey"`
	IPAddress string `gorm:"uniqueIndex;size:64;not null"`
	Reason    string `gorm:"size:255"`
	CreatedAt time.Time
	ExpiresAt *time.Time // nil 表示永久；过期的行不删除，只当作失效
}

func (BannedIP) TableName() string { return "banned_ips" }
