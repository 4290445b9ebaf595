package repository

import (
	"errors"

	"github.com/user/aifilm/internal/model"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review. The composite unique indexes reject a second
// review by the same user for the same title.
func (r *ReviewRepository) Create(review *model.Review) error {
	return r.db.Create(review).Error
}

// FindByID returns (nil, nil) when the review does not exist.
func (r *ReviewRepository) FindByID(id int) (*model.Review, error) {
	var review model.Review
	err := r.db.First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByTarget returns the reviews for one title, newest first, with the
// authoring user loaded.
func (r *ReviewRepository) ListByTarget(target model.ReviewTarget) ([]model.Review, error) {
	var reviews []model.Review
	err := r.targetScope(target).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// CountByTarget counts the reviews for one title.
func (r *ReviewRepository) CountByTarget(target model.ReviewTarget) (int, error) {
	var count int64
	err := r.targetScope(target).Count(&count).Error
	return int(count), err
}

// Delete removes a review owned by the user. Returns false when no row
// matched (absent or not the owner).
func (r *ReviewRepository) Delete(userID, id int) (bool, error) {
	res := r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&model.Review{})
	return res.RowsAffected > 0, res.Error
}

func (r *ReviewRepository) targetScope(target model.ReviewTarget) *gorm.DB {
	q := r.db.Model(&model.Review{})
	if target.Type() == model.ContentTypeMovie {
		return q.Where("movie_id = ?", target.ID())
	}
	return q.Where("tv_show_id = ?", target.ID())
}

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// Toggle adds a like, or removes it if it already exists. Returns whether the
// movie is liked after the call.
func (r *LikeRepository) Toggle(userID, movieID int) (bool, error) {
	var like model.Like
	err := r.db.Where("user_id = ? AND movie_id = ?", userID, movieID).First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, r.db.Create(&model.Like{UserID: userID, MovieID: movieID}).Error
	}
	if err != nil {
		return false, err
	}
	return false, r.db.Delete(&like).Error
}

// CountByMovie counts likes for one movie.
func (r *LikeRepository) CountByMovie(movieID int) (int, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("movie_id = ?", movieID).Count(&count).Error
	return int(count), err
}
