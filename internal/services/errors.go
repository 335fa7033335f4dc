package services

import "errors"

var (
	// ErrUnauthenticated 未登录时的写操作，调用方应静默忽略
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrEmptyContent    = errors.New("content is empty")
	ErrInvalidParent   = errors.New("parent comment not found on this idea")
	ErrNoIdeas         = errors.New("no ideas found")
	ErrTooLong         = errors.New("content too long")
)
