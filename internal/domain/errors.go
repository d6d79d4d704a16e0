package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 圈子不存在
	ErrNotFound = errors.New("circle not found")
	// ErrOwnerNotFound owner_id 指向的成员行缺失（聚合写了一半）
	ErrOwnerNotFound = errors.New("owner not found among member rows")
)

// ValidationError 构造期校验失败，永远不会到达存储层
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
