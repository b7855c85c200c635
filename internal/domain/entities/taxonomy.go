package entities

// Tag 视频标签
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Category 视频分类
type Category struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CreateTagDTO 创建标签请求
type CreateTagDTO struct {
	Name string `json:"name" binding:"required"`
}

// CreateCategoryDTO 创建分类请求
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required"`
}
