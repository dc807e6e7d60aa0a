package repositories

import (
	"context"
	"errors"

	"blogapi/app/models"

	"gorm.io/gorm"
)

func translateGormError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// GormPostRepository implements PostRepository on a relational database.
type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	post.BeforeCreate()
	m := &postRecord{}
	m.fromModel(post)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		*post = *m.toModel()
		return nil
	})
}

func (r *GormPostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var m postRecord
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateGormError(err)
	}
	return m.toModel(), nil
}

func (r *GormPostRepository) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	var records []*postRecord
	err := r.db.WithContext(ctx).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*models.Post, 0, len(records))
	for _, m := range records {
		posts = append(posts, m.toModel())
	}
	return posts, nil
}

// Delete removes the post and its comments in one transaction.
func (r *GormPostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&commentRecord{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&postRecord{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// GormCommentRepository implements CommentRepository on a relational database.
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	comment.BeforeCreate()
	m := &commentRecord{}
	m.fromModel(comment)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(m).Error; err != nil {
			return err
		}
		*comment = *m.toModel()
		return nil
	})
}

func (r *GormCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var m commentRecord
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translateGormError(err)
	}
	return m.toModel(), nil
}

func (r *GormCommentRepository) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	var records []*commentRecord
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*models.Comment, 0, len(records))
	for _, m := range records {
		comments = append(comments, m.toModel())
	}
	return comments, nil
}

func (r *GormCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	res := r.db.WithContext(ctx).
		Model(&commentRecord{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{
			"post_id": comment.PostID,
			"name":    comment.Name,
			"email":   comment.Email,
			"body":    comment.Body,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCommentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&commentRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
