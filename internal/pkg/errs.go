package pkg

import "errors"

// 错误分类，handler 层据此映射 HTTP 状态码
var (
	ErrNotFound     = errors.New("not found")
	ErrThreadClosed = errors.New("thread closed")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation failed")
	ErrDuplicateBan = errors.New("duplicate ban")
	ErrStorage      = errors.New("storage error")
)

// BoardError 分类 + 面向用户的固定文案
type BoardError struct {
	Kind error
	Msg  string
}

func (e *BoardError) Error() string { return e.Msg }

func (e *BoardError) Unwrap() error { return e.Kind }

// Fail 构造带分类的错误，errors.Is(err, kind) 可判定
func Fail(kind error, msg string) error {
	return &BoardError{Kind: kind, Msg: msg}
}
