package entities

import "time"

// User 用户实体
// Password字段映射到数据库的hashed_password列，响应中不序列化
type User struct {
	ID          int64     `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	Username    string    `json:"username" db:"username"`
	Password    string    `json:"-" db:"hashed_password"`
	FullName    string    `json:"fullName,omitempty" db:"full_name"`
	AvatarURL   string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	IsSuperuser bool      `json:"isSuperuser" db:"is_superuser"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateUserDTO 创建用户的数据传输对象
type CreateUserDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
}

// LoginDTO 登录请求对象
type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// UpdateUserDTO 更新用户资料的数据传输对象，空字段不更新
type UpdateUserDTO struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl"`
}
