package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Статус публикации материала.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"
)

// articles — материалы архива
type Article struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	Title string `gorm:"type:varchar(255);not null"`
	Slug  string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Body  string `gorm:"type:text"`

	// Шаблон конкретного материала; пустая строка — шаблон по конвенции.
	Template string `gorm:"type:varchar(255)"`

	Status ArticleStatus `gorm:"type:varchar(32);not null;default:'draft';index"`

	// Дата публикации — поле, по которому строятся архивные представления.
	PublishedAt time.Time `gorm:"type:timestamp with time zone;not null;index"`

	// Произвольные метаданные материала (OG-теги, ключевые слова и т.п.).
	Meta datatypes.JSON `gorm:"type:jsonb"`

	AuthorID  *uuid.UUID `gorm:"type:uuid;index"`
	SectionID *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	// Навигационные поля (опционально, но удобно для Preload).
	Author  *Author  `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Section *Section `gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
