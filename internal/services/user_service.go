package services

import (
	"errors"

	"video-service/internal/auth"
	"video-service/internal/domain/entities"
	"video-service/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// UserService 用户服务
type UserService struct {
	users      *storage.UserRepository
	jwtService *auth.JWTService
}

// NewUserService 创建新的用户服务
func NewUserService(users *storage.UserRepository, jwtService *auth.JWTService) *UserService {
	return &UserService{
		users:      users,
		jwtService: jwtService,
	}
}

// Register 注册新用户
func (s *UserService) Register(dto entities.CreateUserDTO) (entities.User, error) {
	// 检查邮箱是否已注册
	emailExists, err := s.users.EmailExists(dto.Email)
	if err != nil {
		return entities.User{}, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "查询用户失败",
			Err:     err,
		}
	}
	if emailExists {
		return entities.User{}, &ServiceError{
			Type:    ErrTypeConflict,
			Code:    ErrCodeResourceExists,
			Message: "该邮箱已被注册",
		}
	}

	// 检查用户名是否已被占用
	usernameExists, err := s.users.UsernameExists(dto.Username)
	if err != nil {
		return entities.User{}, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "查询用户失败",
			Err:     err,
		}
	}
	if usernameExists {
		return entities.User{}, &ServiceError{
			Type:    ErrTypeConflict,
			Code:    ErrCodeResourceExists,
			Message: "该用户名已被占用",
		}
	}

	// 加密密码
	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, &ServiceError{
			Type:    ErrTypeValidation,
			Code:    ErrCodeInvalidInput,
			Message: "密码加密失败",
			Err:     err,
		}
	}

	user := entities.User{
		Email:    dto.Email,
		Username: dto.Username,
		Password: string(hashed),
		FullName: dto.FullName,
		IsActive: true,
	}

	created, err := s.users.Create(user)
	if err != nil {
		return entities.User{}, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "创建用户失败",
			Err:     err,
		}
	}

	return created, nil
}

// Authenticate 用户名密码认证，成功返回JWT令牌
func (s *UserService) Authenticate(username, password string) (string, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return "", &ServiceError{
				Type:    ErrTypeUnauthorized,
				Code:    ErrCodeBadCredentials,
				Message: "用户名或密码错误",
			}
		}
		return "", &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "查询用户失败",
			Err:     err,
		}
	}

	if !user.IsActive {
		return "", &ServiceError{
			Type:    ErrTypeUnauthorized,
			Code:    ErrCodeUnauthorized,
			Message: "账号已被禁用",
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", &ServiceError{
			Type:    ErrTypeUnauthorized,
			Code:    ErrCodeBadCredentials,
			Message: "用户名或密码错误",
		}
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", &ServiceError{
			Type:    ErrTypeUnauthorized,
			Code:    ErrCodeUnauthorized,
			Message: "生成令牌失败",
			Err:     err,
		}
	}

	return token, nil
}

// GetByID 按ID获取用户
func (s *UserService) GetByID(id int64) (entities.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return entities.User{}, &ServiceError{
				Type:    ErrTypeNotFound,
				Code:    ErrCodeResourceNotFound,
				Message: "用户不存在",
			}
		}
		return entities.User{}, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "查询用户失败",
			Err:     err,
		}
	}
	return user, nil
}

// UpdateProfile 更新用户资料，空字段保持原值
func (s *UserService) UpdateProfile(id int64, dto entities.UpdateUserDTO) (entities.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return entities.User{}, err
	}

	if dto.Email != "" && dto.Email != user.Email {
		exists, err := s.users.EmailExists(dto.Email)
		if err != nil {
			return entities.User{}, &ServiceError{
				Type:    ErrTypeDatabase,
				Code:    ErrCodeDBQuery,
				Message: "查询用户失败",
				Err:     err,
			}
		}
		if exists {
			return entities.User{}, &ServiceError{
				Type:    ErrTypeConflict,
				Code:    ErrCodeResourceExists,
				Message: "该邮箱已被注册",
			}
		}
		user.Email = dto.Email
	}

	if dto.Username != "" && dto.Username != user.Username {
		exists, err := s.users.UsernameExists(dto.Username)
		if err != nil {
			return entities.User{}, &ServiceError{
				Type:    ErrTypeDatabase,
				Code:    ErrCodeDBQuery,
				Message: "查询用户失败",
				Err:     err,
			}
		}
		if exists {
			return entities.User{}, &ServiceError{
				Type:    ErrTypeConflict,
				Code:    ErrCodeResourceExists,
				Message: "该用户名已被占用",
			}
		}
		user.Username = dto.Username
	}

	if dto.FullName != "" {
		user.FullName = dto.FullName
	}
	if dto.AvatarURL != "" {
		user.AvatarURL = dto.AvatarURL
	}

	updated, err := s.users.Update(user)
	if err != nil {
		return entities.User{}, &ServiceError{
			Type:    ErrTypeDatabase,
			Code:    ErrCodeDBQuery,
			Message: "更新用户失败",
			Err:     err,
		}
	}

	return updated, nil
}
