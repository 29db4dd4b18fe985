package model

import "time"

type Post struct {
	ID         uint64 `gorm:"primaryKey"`
	ThreadID   uint64 `gorm:"not null;index:idx_posts_thread_id"`
	PostNumber int    `gorm:"not null"` // 串内楼层号，逻辑删除后也不复用
	Name       string `gorm:"size:100;not null"`
	Trip       string `gorm:"size:16"` // ◆ 开头的 trip，空串表示没有
	Email      string `gorm:"size:100"`
	Body       string `gorm:"type:text;not null"` // 只存原始文本，渲染放在读取时
	IPAddress  string `gorm:"size:64;not null"`
	UserID     string `gorm:"size:16;not null"` // 日替ID
	IsDeleted  bool   `gorm:"not null;default:false"`
	IsAdmin    bool   `gorm:"not null;default:false"`
	PersonaID  *uint64
	CreatedAt  time.Time
}

func (Post) TableName() string { return "posts" }
