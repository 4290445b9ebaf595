package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidReviewTarget is returned when a review does not reference exactly
// one of movie/tvshow.
var ErrInvalidReviewTarget = errors.New("review must reference exactly one of movie or tvshow")

// ReviewTarget is a tagged union naming the single title a review (or history
// or watchlist entry) belongs to. Constructing a Review through NewReview
// with a valid target is the only supported write path.
type ReviewTarget struct {
	kind ContentType
	id   int
}

// MovieTarget points at a movie row.
func MovieTarget(id int) ReviewTarget {
	return ReviewTarget{kind: ContentTypeMovie, id: id}
}

// TVShowTarget points at a tvshow row.
func TVShowTarget(id int) ReviewTarget {
	return ReviewTarget{kind: ContentTypeTVShow, id: id}
}

// Type returns the target content type.
func (t ReviewTarget) Type() ContentType { return t.kind }

// ID returns the target row id.
func (t ReviewTarget) ID() int { return t.id }

// Valid reports whether the target names a real kind and a positive id.
func (t ReviewTarget) Valid() bool {
	return t.kind.Valid() && t.id > 0
}

// Review is a user's rating plus free-text comment on one title. At most one
// review per (user, movie) and per (user, tvshow), enforced by the composite
// unique indexes below.
type Review struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id" gorm:"uniqueIndex:uniq_user_movie_review;uniqueIndex:uniq_user_tvshow_review"`
	MovieID   *int      `json:"movie_id,omitempty" db:"movie_id" gorm:"uniqueIndex:uniq_user_movie_review"`
	TVShowID  *int      `json:"tvshow_id,omitempty" db:"tv_show_id" gorm:"uniqueIndex:uniq_user_tvshow_review"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"index"`
	User      *User     `json:"user,omitempty"`
	Movie     *Movie    `json:"-"`
	TVShow    *TVShow   `json:"-"`
}

// NewReview builds a review for exactly one title. A zero rating falls back
// to 5; range validation happens at the request binding layer.
func NewReview(userID int, target ReviewTarget, rating int, comment string) (*Review, error) {
	if !target.Valid() {
		return nil, ErrInvalidReviewTarget
	}
	if rating == 0 {
		rating = 5
	}
	r := &Review{
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	id := target.ID()
	switch target.Type() {
	case ContentTypeMovie:
		r.MovieID = &id
	case ContentTypeTVShow:
		r.TVShowID = &id
	}
	return r, nil
}

// Target reconstructs the tagged union from the stored row. Returns an
// invalid target if the row violates the XOR rule.
func (r *Review) Target() ReviewTarget {
	switch {
	case r.MovieID != nil && r.TVShowID == nil:
		return MovieTarget(*r.MovieID)
	case r.TVShowID != nil && r.MovieID == nil:
		return TVShowTarget(*r.TVShowID)
	}
	return ReviewTarget{}
}

// Validate checks the movie-XOR-tvshow rule on an already-built row.
func (r *Review) Validate() error {
	if !r.Target().Valid() {
		return ErrInvalidReviewTarget
	}
	return nil
}

// BeforeSave rejects rows violating the XOR rule on every gorm write path,
// not just the constructor.
func (r *Review) BeforeSave(_ *gorm.DB) error {
	return r.Validate()
}
