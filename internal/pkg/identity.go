package pkg

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultPosterName 名字栏为空时的默认名
	DefaultPosterName = "名無しさん＠お腹いっぱい。"
	// TripMarker trip 前缀符号，用来和日替ID区分
	TripMarker = "◆"
	// ModeratorAddress 管理员发帖记录的固定地址，不落真实IP
	ModeratorAddress = "127.0.0.1"
	// AdminPosterName 建串首帖使用的管理员名
	AdminPosterName = "管理人★"
	// AdminUserID 建串首帖使用的固定ID
	AdminUserID = "ADMIN"

	fingerprintLen = 9
	tripLen        = 10
)

// DayToken 日替ID的日期 token（UTC 的 YYYY-MM-DD）
func DayToken(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// UserFingerprint 由 IP + 日期 + secret 导出日替ID。
// 同一天内同一访客的发言可以互相对上，跨天则换一个ID。
func UserFingerprint(addr, day, secret string) string {
	sum := sha256.Sum256([]byte(addr + day + secret))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// PersonaFingerprint 由 persona 编号导出与普通用户同格式的ID
func PersonaFingerprint(personaNumber int, day, secret string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("persona%d%s%s", personaNumber, day, secret)))
	return hex.EncodeToString(sum[:])[:fingerprintLen]
}

// Tripcode 由密码生成 ◆ 开头的 trip。
// sha256 → base64 → 只留英数字 → 取前10位
func Tripcode(password string) string {
	sum := sha256.Sum256([]byte(password))
	b64 := base64.StdEncoding.EncodeToString(sum[:])

	var b strings.Builder
	for i := 0; i < len(b64) && b.Len() < tripLen; i++ {
		c := b64[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
		}
	}
	return TripMarker + b.String()
}

// SplitName 按第一个 # 把名字栏拆成名字和 trip 密码。
// # 后面为空时不拆分，整个输入当名字用（不产生 trip）。
// 名字部分为空则落到默认名。
func SplitName(input string) (name, trip string) {
	idx := strings.Index(input, "#")
	if idx >= 0 && idx+1 < len(input) {
		name = input[:idx]
		trip = Tripcode(input[idx+1:])
	} else {
		name = input
	}
	if name == "" {
		name = DefaultPosterName
	}
	return name, trip
}

// Momentum 勢い = 回复数 / 经过天数。刚建的串用 0.01 天兜底防止除零爆表
func Momentum(postCount int, createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	if days < 0.01 {
		days = 0.01
	}
	return float64(postCount) / days
}
