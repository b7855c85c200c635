package entities

import "errors"

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrAlreadyExists 记录已存在（唯一约束冲突）
	ErrAlreadyExists = errors.New("记录已存在")
)
