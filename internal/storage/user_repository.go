package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"video-service/internal/domain/entities"

	"github.com/jmoiron/sqlx"
)

// UserRepository 用户存储库
type UserRepository struct {
	DB *sqlx.DB
}

// NewUserRepository 创建用户存储库
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{
		DB: db,
	}
}

// FindByEmail 通过邮箱查找用户
func (r *UserRepository) FindByEmail(email string) (entities.User, error) {
	var user entities.User

	query := "SELECT * FROM users WHERE email = $1"
	if err := r.DB.Get(&user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.User{}, entities.ErrNotFound
		}
		return entities.User{}, err
	}

	return user, nil
}

// FindByUsername 通过用户名查找用户
func (r *UserRepository) FindByUsername(username string) (entities.User, error) {
	var user entities.User

	query := "SELECT * FROM users WHERE username = $1"
	if err := r.DB.Get(&user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.User{}, entities.ErrNotFound
		}
		return entities.User{}, err
	}

	return user, nil
}

// FindByID 通过ID查找用户
func (r *UserRepository) FindByID(id int64) (entities.User, error) {
	var user entities.User

	query := "SELECT * FROM users WHERE id = $1"
	if err := r.DB.Get(&user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.User{}, entities.ErrNotFound
		}
		return entities.User{}, err
	}

	return user, nil
}

// Create 创建新用户
func (r *UserRepository) Create(user entities.User) (entities.User, error) {
	query := `
		INSERT INTO users (
			email, username, hashed_password, full_name, avatar_url,
			is_active, is_superuser, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING *
	`

	now := time.Now()
	var result entities.User
	err := r.DB.QueryRowx(
		query,
		user.Email,
		user.Username,
		user.Password,
		user.FullName,
		user.AvatarURL,
		user.IsActive,
		user.IsSuperuser,
		now,
		now,
	).StructScan(&result)

	if err != nil {
		return entities.User{}, fmt.Errorf("创建用户失败: %w", err)
	}

	return result, nil
}

// Update 更新用户资料
func (r *UserRepository) Update(user entities.User) (entities.User, error) {
	query := `
		UPDATE users
		SET email = $1, username = $2, full_name = $3, avatar_url = $4, updated_at = $5
		WHERE id = $6
		RETURNING *
	`

	var result entities.User
	err := r.DB.QueryRowx(
		query,
		user.Email,
		user.Username,
		user.FullName,
		user.AvatarURL,
		time.Now(),
		user.ID,
	).StructScan(&result)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.User{}, entities.ErrNotFound
		}
		return entities.User{}, err
	}

	return result, nil
}

// EmailExists 检查邮箱是否已存在
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM users WHERE email = $1"
	if err := r.DB.Get(&count, query, email); err != nil {
		return false, err
	}
	return count > 0, nil
}

// UsernameExists 检查用户名是否已存在
func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM users WHERE username = $1"
	if err := r.DB.Get(&count, query, username); err != nil {
		return false, err
	}
	return count > 0, nil
}
