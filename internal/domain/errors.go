package domain

import "errors"

// 业务错误集合，路由边界统一翻译成 flash 或 JSON 错误响应。
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrEmailMissing       = errors.New("unable to retrieve email from provider")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfDeletion       = errors.New("you cannot delete yourself")
)

// Invalid 带说明的校验错误
func Invalid(msg string) error {
	return &invalidErr{msg: msg}
}

type invalidErr struct{ msg string }

func (e *invalidErr) Error() string { return e.msg }
func (e *invalidErr) Unwrap() error { return ErrValidation }
