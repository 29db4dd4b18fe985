package service

import (
	"errors"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"Debt_BBS/internal/model"
	"Debt_BBS/internal/pkg"
	"Debt_BBS/internal/repository/mysql"

	"gorm.io/gorm"
)

const (
	maxBodyRunes  = 4000
	maxNameRunes  = 100
	maxEmailRunes = 100
	maxPostCount  = 1000
)

type BoardService struct {
	threads  ThreadStore
	posts    PostStore
	bans     BanStore
	personas PersonaStore
	secret   string
	now      func() time.Time
}

func NewBoardService(secret string) *BoardService {
	return &BoardService{
		threads:  &mysql.ThreadRepository{},
		posts:    &mysql.PostRepository{},
		bans:     &mysql.BanRepository{},
		personas: &mysql.PersonaRepository{},
		secret:   secret,
		now:      time.Now,
	}
}

// SubmitPost 投稿主流程。校验顺序固定，命中第一个失败就返回：
// 串存在 → 未归档未满 → （非管理员）IP 未被封 → 正文非空且 ≤4000 字。
// 通过后解析名字/trip、导出日替ID，最后走 AppendPost 原子提交。
// 返回分配到的楼层号。
func (s *BoardService) SubmitPost(threadID uint64, addr string, isModerator bool,
	rawName, email, body string, personaID *uint64) (int, error) {

	thread, err := s.threads.FindByID(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkg.Fail(pkg.ErrNotFound, "スレッドが見つかりません")
		}
		return 0, pkg.Fail(pkg.ErrStorage, err.Error())
	}

	if thread.IsArchived || thread.PostCount >= maxPostCount {
		return 0, pkg.Fail(pkg.ErrThreadClosed, "このスレッドは書き込みできません")
	}

	now := s.now()

	// 管理员不吃 IP 封禁
	if !isModerator {
		ban, err := s.bans.FindByAddress(addr)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkg.Fail(pkg.ErrStorage, err.Error())
		}
		if err == nil && banInEffect(ban, now) {
			return 0, pkg.Fail(pkg.ErrForbidden, "書き込み規制中です")
		}
	}

	if strings.TrimSpace(body) == "" {
		return 0, pkg.Fail(pkg.ErrValidation, "本文を入力してください")
	}
	if utf8.RuneCountInString(body) > maxBodyRunes {
		return 0, pkg.Fail(pkg.ErrValidation, "本文は4000文字以内で入力してください")
	}

	name, trip := pkg.SplitName(rawName)
	name = truncateRunes(name, maxNameRunes)
	email = truncateRunes(email, maxEmailRunes)

	// 日替ID：管理员选了有效 persona 就用 persona 导出，否则按来源地址导出
	day := pkg.DayToken(now)
	userID := pkg.UserFingerprint(addr, day, s.secret)
	var postPersona *uint64
	if isModerator && personaID != nil {
		if p, err := s.personas.FindByID(*personaID); err == nil {
			userID = pkg.PersonaFingerprint(int(p.ID), day, s.secret)
			postPersona = &p.ID
		}
	}

	// 管理员发言一律落固定地址，库里不留真实 IP
	ipAddress := addr
	if isModerator {
		ipAddress = pkg.ModeratorAddress
	}

	// email 栏含 sage（不区分大小写）则不顶串
	bump := !strings.Contains(strings.ToLower(email), "sage")

	post := &model.Post{
		ThreadID:  threadID,
		Name:      name,
		Trip:      trip,
		Email:     email,
		Body:      body,
		IPAddress: ipAddress,
		UserID:    userID,
		PersonaID: postPersona,
	}

	number, err := s.threads.AppendPost(post, bump, now)
	if err != nil {
		if errors.Is(err, pkg.ErrThreadClosed) {
			return 0, err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkg.Fail(pkg.ErrNotFound, "スレッドが見つかりません")
		}
		return 0, pkg.Fail(pkg.ErrStorage, err.Error())
	}
	return number, nil
}

// CreateThread 建串（仅管理员入口，handler 层把关）。
// body 非空时由 管理人★ 名义发首帖，不走日替ID也不查封禁。
func (s *BoardService) CreateThread(threadNumber int, title, body string) (*model.Thread, error) {
	if strings.TrimSpace(title) == "" {
		return nil, pkg.Fail(pkg.ErrValidation, "タイトルを入力してください")
	}

	now := s.now()
	thread := &model.Thread{
		ThreadNumber: threadNumber,
		Title:        title,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var first *model.Post
	if strings.TrimSpace(body) != "" {
		thread.PostCount = 1
		first = &model.Post{
			PostNumber: 1,
			Name:       pkg.AdminPosterName,
			Body:       body,
			IPAddress:  pkg.ModeratorAddress,
			UserID:     pkg.AdminUserID,
			IsAdmin:    true,
			CreatedAt:  now,
		}
	}

	if err := s.threads.Create(thread, first); err != nil {
		return nil, pkg.Fail(pkg.ErrStorage, err.Error())
	}
	return thread, nil
}

// RankedThread 勢い排序用的串视图
type RankedThread struct {
	model.Thread
	Momentum       float64 `json:"momentum"`
	UpdatedAtLabel string  `json:"updated_at_label"`
}

// ListThreadsByMomentum 读取时算勢い并降序排序，不落库
func (s *BoardService) ListThreadsByMomentum() ([]RankedThread, error) {
	threads, err := s.threads.List()
	if err != nil {
		return nil, pkg.Fail(pkg.ErrStorage, err.Error())
	}

	now := s.now()
	ranked := make([]RankedThread, 0, len(threads))
	for _, t := range threads {
		ranked = append(ranked, RankedThread{
			Thread:         t,
			Momentum:       pkg.Momentum(t.PostCount, t.CreatedAt, now),
			UpdatedAtLabel: pkg.FormatDateShort(t.UpdatedAt),
		})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Momentum > ranked[j].Momentum })
	return ranked, nil
}

// PostView 渲染后的单条回复
type PostView struct {
	ID         uint64  `json:"id"`
	PostNumber int     `json:"post_number"`
	Name       string  `json:"name"`
	Trip       string  `json:"trip,omitempty"`
	Email      string  `json:"email,omitempty"`
	Body       string  `json:"body"`
	UserID     string  `json:"user_id"`
	CreatedAt  string  `json:"created_at"`
	IsDeleted  bool    `json:"is_deleted"`
	PersonaID  *uint64 `json:"persona_id,omitempty"`
}

type ThreadPage struct {
	Thread   model.Thread    `json:"thread"`
	Posts    []PostView      `json:"posts"`
	Size     string          `json:"size"`
	Personas []model.Persona `json:"personas,omitempty"` // 仅管理员可见
}

// ThreadView 组装整串的展示数据。正文在这里才渲染，库里永远是原文。
// 被删除的回复对普通读者显示 あぼーん，管理员能看到原文。
func (s *BoardService) ThreadView(threadID uint64, isModerator bool) (*ThreadPage, error) {
	thread, err := s.threads.FindByID(threadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.Fail(pkg.ErrNotFound, "スレッドが見つかりません")
		}
		return nil, pkg.Fail(pkg.ErrStorage, err.Error())
	}

	posts, err := s.posts.ListByThread(threadID)
	if err != nil {
		return nil, pkg.Fail(pkg.ErrStorage, err.Error())
	}

	bodies := make([]string, 0, len(posts))
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		bodies = append(bodies, p.Body)

		v := PostView{
			ID:         p.ID,
			PostNumber: p.PostNumber,
			Name:       p.Name,
			Trip:       p.Trip,
			Email:      p.Email,
			Body:       pkg.RenderBody(p.Body, threadID),
			UserID:     p.UserID,
			CreatedAt:  pkg.FormatDate(p.CreatedAt),
			IsDeleted:  p.IsDeleted,
		}
		if isModerator {
			v.PersonaID = p.PersonaID
		}
		if p.IsDeleted && !isModerator {
			v.Name = "あぼーん"
			v.Trip = ""
			v.Email = ""
			v.Body = "あぼーん"
			v.UserID = ""
		}
		views = append(views, v)
	}

	page := &ThreadPage{
		Thread: *thread,
		Posts:  views,
		Size:   pkg.SizeLabel(bodies),
	}
	if isModerator {
		if personas, err := s.personas.List(); err == nil {
			page.Personas = personas
		}
	}
	return page, nil
}

// Personas 发帖表单用的人格目录（仅管理员）
func (s *BoardService) Personas() ([]model.Persona, error) {
	list, err := s.personas.List()
	if err != nil {
		return nil, pkg.Fail(pkg.ErrStorage, err.Error())
	}
	return list, nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
