package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
	ErrTokenDeleted     = errors.New("token delete failed")
)

const (
	AdminTokenPrefix = "login:admin:token"
	AdminTokenExpire = 60 * 30
)

// AdminRepository 管理员会话 token 的服务端存根。
// 登出删掉这里的 token 后，剩余有效期内的 JWT 也立刻作废。
type AdminRepository struct{}

func (r *AdminRepository) AddToken(adminID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", AdminTokenPrefix, adminID)
	if err := Client.Set(context.Background(), key, token, time.Second*AdminTokenExpire).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *AdminRepository) GetToken(adminID uint64) (string, error) {
	key := fmt.Sprintf("%s:%d", AdminTokenPrefix, adminID)
	token, err := Client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// ExtendToken 每次校验通过后顺延过期时间
func (r *AdminRepository) ExtendToken(adminID uint64) error {
	key := fmt.Sprintf("%s:%d", AdminTokenPrefix, adminID)
	_, err := Client.Expire(context.Background(), key, time.Second*AdminTokenExpire).Result()
	if err != nil {
		return ErrExtendFailed
	}
	return nil
}

func (r *AdminRepository) DeleteToken(adminID uint64) error {
	key := fmt.Sprintf("%s:%d", AdminTokenPrefix, adminID)
	if err := Client.Del(context.Background(), key).Err(); err != nil {
		return ErrTokenDeleted
	}
	return nil
}
