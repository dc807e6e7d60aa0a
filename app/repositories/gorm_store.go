package repositories

import (
	"fmt"
	"time"

	"blogapi/app/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type postRecord struct {
	ID          int64           `gorm:"primaryKey"`
	Title       string          `gorm:"size:200;not null"`
	Description string          `gorm:"not null"`
	Content     string          `gorm:"type:text;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	Comments    []commentRecord `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (postRecord) TableName() string {
	return "posts"
}

func (m *postRecord) fromModel(p *models.Post) {
	m.ID = p.ID
	m.Title = p.Title
	m.Description = p.Description
	m.Content = p.Content
	m.CreatedAt = p.CreatedAt
}

func (m *postRecord) toModel() *models.Post {
	return &models.Post{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
	}
}

type commentRecord struct {
	ID        int64     `gorm:"primaryKey"`
	PostID    int64     `gorm:"not null;index"`
	Name      string    `gorm:"size:100;not null"`
	Email     string    `gorm:"size:254;not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (commentRecord) TableName() string {
	return "comments"
}

func (m *commentRecord) fromModel(c *models.Comment) {
	m.ID = c.ID
	m.PostID = c.PostID
	m.Name = c.Name
	m.Email = c.Email
	m.Body = c.Body
	m.CreatedAt = c.CreatedAt
}

func (m *commentRecord) toModel() *models.Comment {
	return &models.Comment{
		ID:        m.ID,
		PostID:    m.PostID,
		Name:      m.Name,
		Email:     m.Email,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

// GormStore wraps a gorm connection shared by the relational repositories.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an already opened gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// OpenPostgres connects to PostgreSQL using dsn. SQL warnings and slow
// queries go to log.
func OpenPostgres(dsn string, log *logrus.Logger) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: NewGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormStore(db), nil
}

// NewGormLogger routes gorm's logging through logrus.
func NewGormLogger(log *logrus.Logger) gormlogger.Interface {
	if log == nil {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	return gormlogger.New(log, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate creates or updates the posts and comments tables.
func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&postRecord{}, &commentRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Posts returns a post repository backed by this store.
func (s *GormStore) Posts() *GormPostRepository {
	return NewGormPostRepository(s.db)
}

// Comments returns a comment repository backed by this store.
func (s *GormStore) Comments() *GormCommentRepository {
	return NewGormCommentRepository(s.db)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
