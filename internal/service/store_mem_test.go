package service

import (
	"sync"
	"time"

	"Debt_BBS/internal/model"
	"Debt_BBS/internal/pkg"

	"gorm.io/gorm"
)

// memStore 内存版存储，实现 service 的全部端口。
// AppendPost 用互斥锁模拟线上 FOR UPDATE 事务的原子性。
type memStore struct {
	mu sync.Mutex

	threads  map[uint64]*model.Thread
	posts    map[uint64]*model.Post
	bans     map[uint64]*model.BannedIP
	personas map[uint64]*model.Persona

	nextThreadID uint64
	nextPostID   uint64
	nextBanID    uint64
}

func newMemStore() *memStore {
	return &memStore{
		threads:  make(map[uint64]*model.Thread),
		posts:    make(map[uint64]*model.Post),
		bans:     make(map[uint64]*model.BannedIP),
		personas: make(map[uint64]*model.Persona),
	}
}

func (m *memStore) Create(t *model.Thread, first *model.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextThreadID++
	t.ID = m.nextThreadID
	cp := *t
	m.threads[t.ID] = &cp

	if first != nil {
		first.ThreadID = t.ID
		m.nextPostID++
		first.ID = m.nextPostID
		pcp := *first
		m.posts[first.ID] = &pcp
	}
	return nil
}

func (m *memStore) FindByID(id uint64) (*model.Thread, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.threads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memStore) List() ([]model.Thread, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]model.Thread, 0, len(m.threads))
	for _, t := range m.threads {
		list = append(list, *t)
	}
	return list, nil
}

func (m *memStore) AppendPost(post *model.Post, bump bool, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.threads[post.ThreadID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	if t.IsArchived || t.PostCount >= 1000 {
		return 0, pkg.Fail(pkg.ErrThreadClosed, "このスレッドは書き込みできません")
	}

	number := t.PostCount + 1
	post.PostNumber = number
	post.CreatedAt = now
	m.nextPostID++
	post.ID = m.nextPostID
	cp := *post
	m.posts[post.ID] = &cp

	t.PostCount = number
	if bump {
		t.UpdatedAt = now
	}
	if number >= 1000 {
		t.IsArchived = true
	}
	return number, nil
}

func (m *memStore) Delete(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.threads, id)
	for pid, p := range m.posts {
		if p.ThreadID == id {
			delete(m.posts, pid)
		}
	}
	return nil
}

func (m *memStore) FindPostByID(id uint64) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) ListByThread(threadID uint64) ([]model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var list []model.Post
	for _, p := range m.posts {
		if p.ThreadID == threadID {
			list = append(list, *p)
		}
	}
	// 按楼层号升序，和 mysql 实现一致
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j-1].PostNumber > list[j].PostNumber; j-- {
			list[j-1], list[j] = list[j], list[j-1]
		}
	}
	return list, nil
}

func (m *memStore) LogicalDelete(id uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.posts[id]
	if !ok || p.IsDeleted {
		return 0, nil
	}
	p.IsDeleted = true
	return 1, nil
}

func (m *memStore) CreateBan(b *model.BannedIP) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.bans {
		if existing.IPAddress == b.IPAddress {
			return gorm.ErrDuplicatedKey
		}
	}
	m.nextBanID++
	b.ID = m.nextBanID
	cp := *b
	m.bans[b.ID] = &cp
	return nil
}

func (m *memStore) FindByAddress(addr string) (*model.BannedIP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.bans {
		if b.IPAddress == addr {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) ListBans() ([]model.BannedIP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]model.BannedIP, 0, len(m.bans))
	for _, b := range m.bans {
		list = append(list, *b)
	}
	return list, nil
}

func (m *memStore) DeleteBan(id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.bans, id)
	return nil
}

func (m *memStore) ListPersonas() ([]model.Persona, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := make([]model.Persona, 0, len(m.personas))
	for _, p := range m.personas {
		list = append(list, *p)
	}
	return list, nil
}

func (m *memStore) FindPersonaByID(id uint64) (*model.Persona, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.personas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) addPersona(id uint64, name string) {
	m.personas[id] = &model.Persona{ID: id, Name: name}
}

// 端口适配：post / ban / persona 各自包一层，避免方法名冲突

type memPosts struct{ *memStore }

func (m memPosts) FindByID(id uint64) (*model.Post, error) { return m.FindPostByID(id) }

type memBans struct{ *memStore }

func (m memBans) Create(b *model.BannedIP) error  { return m.CreateBan(b) }
func (m memBans) List() ([]model.BannedIP, error) { return m.ListBans() }
func (m memBans) Delete(id uint64) error          { return m.DeleteBan(id) }

type memPersonas struct{ *memStore }

func (m memPersonas) List() ([]model.Persona, error)             { return m.ListPersonas() }
func (m memPersonas) FindByID(id uint64) (*model.Persona, error) { return m.FindPersonaByID(id) }
