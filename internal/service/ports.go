package service

import (
	"time"

	"Debt_BBS/internal/model"
)

// 存储契约。mysql 仓储是线上实现，测试用内存实现替换。

// ThreadStore 串的读写。AppendPost 必须把「读 post_count → 插回复 → 更新串」
// 做成对单串原子的一步，楼层号的连续性靠它保证。
type ThreadStore interface {
	Create(t *model.Thread, first *model.Post) error
	FindByID(id uint64) (*model.Thread, error)
	List() ([]model.Thread, error)
	AppendPost(post *model.Post, bump bool, now time.Time) (int, error)
	Delete(id uint64) error
}

type PostStore interface {
	FindByID(id uint64) (*model.Post, error)
	ListByThread(threadID uint64) ([]model.Post, error)
	LogicalDelete(id uint64) (int64, error)
}

type BanStore interface {
	Create(b *model.BannedIP) error
	FindByAddress(addr string) (*model.BannedIP, error)
	List() ([]model.BannedIP, error)
	Delete(id uint64) error
}

type PersonaStore interface {
	List() ([]model.Persona, error)
	FindByID(id uint64) (*model.Persona, error)
}

type AdminStore interface {
	Create(admin *model.Admin) error
	FindByUsername(username string) (*model.Admin, error)
	FindByID(id uint64) (*model.Admin, error)
	UpdatePassword(admin *model.Admin, newPassword string) error
	Count() (int64, error)
}

// SessionStore 管理员会话 token 的服务端存根
type SessionStore interface {
	AddToken(adminID uint64, token string) error
	DeleteToken(adminID uint64) error
}
