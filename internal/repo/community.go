package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/beauty_portal/internal/models"
)

func (r *GormRepo) CreatePost(ctx context.Context, p *models.Post) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// DeletePost removes the post with its likes and comments.
func (r *GormRepo) DeletePost(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Post{}).Error
	})
}

func (r *GormRepo) RecentPosts(ctx context.Context, limit int) ([]models.Post, error) {
	var out []models.Post
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) PostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var p models.Post
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Comments returns the post's comments oldest first.
func (r *GormRepo) Comments(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var out []models.Comment
	if err := r.DB.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) CreateComment(ctx context.Context, c *models.Comment) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// ToggleLike flips the (post, user) like without reading first: a delete that hits a
// row means the like is gone; otherwise an insert that ignores a concurrent duplicate.
func (r *GormRepo) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (bool, error) {
	db := r.DB.WithContext(ctx)
	res := db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	like := models.PostLike{PostID: postID, UserID: userID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *GormRepo) LikedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var likes []models.PostLike
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		out[l.PostID] = true
	}
	return out, nil
}

func (r *GormRepo) LikeCounts(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		PostID uuid.UUID
		N      int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.PostLike{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PostID] = row.N
	}
	return out, nil
}

func (r *GormRepo) CountLikes(ctx context.Context, postID, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&n).Error
	return n, err
}
