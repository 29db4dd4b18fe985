package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"Debt_BBS/internal/model"
	"Debt_BBS/internal/pkg"
	"Debt_BBS/internal/repository/mysql"

	"gorm.io/gorm"
)

type ModerationService struct {
	bans     BanStore
	posts    PostStore
	threads  ThreadStore
	producer *pkg.KafkaProducer // 为 nil 时不发审计事件
	now      func() time.Time
}

func NewModerationService(producer *pkg.KafkaProducer) *ModerationService {
	return &ModerationService{
		bans:     &mysql.BanRepository{},
		posts:    &mysql.PostRepository{},
		threads:  &mysql.ThreadRepository{},
		producer: producer,
		now:      time.Now,
	}
}

// banInEffect 封禁是否仍然生效。expiresAt 为 nil 是永久；
// 到期时刻（含正好等于 now）之后失效，但行留在库里不删。
func banInEffect(b *model.BannedIP, now time.Time) bool {
	return b.ExpiresAt == nil || b.ExpiresAt.After(now)
}

// IsBlocked 地址精确匹配查封禁。过期的封禁视同不存在
func (s *ModerationService) IsBlocked(addr string, now time.Time) (bool, error) {
	ban, err := s.bans.FindByAddress(addr)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, pkg.Fail(pkg.ErrStorage, err.Error())
	}
	return banInEffect(ban, now), nil
}

// AddBan durationDays <= 0 为永久封禁。同一地址重复封禁报 DuplicateBan
func (s *ModerationService) AddBan(operatorID uint64, addr, reason string, durationDays int) (*model.BannedIP, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, pkg.Fail(pkg.ErrValidation, "IPアドレスを入力してください")
	}

	now := s.now()
	ban := &model.BannedIP{
		IPAddress: addr,
		Reason:    reason,
		CreatedAt: now,
	}
	if durationDays > 0 {
		expires := now.Add(time.Duration(durationDays) * 24 * time.Hour)
		ban.ExpiresAt = &expires
	}

	if err := s.bans.Create(ban); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkg.Fail(pkg.ErrDuplicateBan, "このIPは既に規制されています")
		}
		return nil, pkg.Fail(pkg.ErrStorage, err.Error())
	}

	s.audit(pkg.ModerationEvent{Action: "ban.add", TargetID: ban.ID, Address: addr, Operator: operatorID})
	return ban, nil
}

// RemoveBan 幂等：id 不存在也返回成功
func (s *ModerationService) RemoveBan(operatorID, id uint64) error {
	if err := s.bans.Delete(id); err != nil {
		return pkg.Fail(pkg.ErrStorage, err.Error())
	}
	s.audit(pkg.ModerationEvent{Action: "ban.remove", TargetID: id, Operator: operatorID})
	return nil
}

func (s *ModerationService) ListBans() ([]model.BannedIP, error) {
	list, err := s.bans.List()
	if err != nil {
		return nil, pkg.Fail(pkg.ErrStorage, err.Error())
	}
	return list, nil
}

// DeletePost 逻辑删除。行保留撑住楼层号，已删过视为幂等成功
func (s *ModerationService) DeletePost(operatorID, postID uint64) error {
	affected, err := s.posts.LogicalDelete(postID)
	if err != nil {
		return pkg.Fail(pkg.ErrStorage, err.Error())
	}
	if affected == 0 {
		if _, err := s.posts.FindByID(postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkg.Fail(pkg.ErrNotFound, "投稿が見つかりません")
			}
			return pkg.Fail(pkg.ErrStorage, err.Error())
		}
		// 行还在说明只是已删除，幂等放行
		return nil
	}
	s.audit(pkg.ModerationEvent{Action: "post.delete", TargetID: postID, Operator: operatorID})
	return nil
}

// DeleteThread 物理删除整串及其所有回复
func (s *ModerationService) DeleteThread(operatorID, threadID uint64) error {
	if _, err := s.threads.FindByID(threadID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkg.Fail(pkg.ErrNotFound, "スレッドが見つかりません")
		}
		return pkg.Fail(pkg.ErrStorage, err.Error())
	}
	if err := s.threads.Delete(threadID); err != nil {
		return pkg.Fail(pkg.ErrStorage, err.Error())
	}
	s.audit(pkg.ModerationEvent{Action: "thread.delete", TargetID: threadID, Operator: operatorID})
	return nil
}

// audit 尽力而为地发审计事件，失败只记日志，不影响管理操作本身
func (s *ModerationService) audit(ev pkg.ModerationEvent) {
	if s.producer == nil {
		return
	}
	ev.At = s.now()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.producer.SendEvent(ctx, ev); err != nil {
		log.Printf("审计事件发送失败 action=%s: %v", ev.Action, err)
	}
}
