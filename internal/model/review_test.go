package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	t.Run("movie target", func(t *testing.T) {
		r, err := NewReview(1, MovieTarget(42), 4, "harika")
		require.NoError(t, err)
		require.NotNil(t, r.MovieID)
		assert.Equal(t, 42, *r.MovieID)
		assert.Nil(t, r.TVShowID)
		assert.Equal(t, 4, r.Rating)
	})

	t.Run("tvshow target", func(t *testing.T) {
		r, err := NewReview(1, TVShowTarget(7), 3, "")
		require.NoError(t, err)
		require.NotNil(t, r.TVShowID)
		assert.Equal(t, 7, *r.TVShowID)
		assert.Nil(t, r.MovieID)
	})

	t.Run("zero rating defaults to 5", func(t *testing.T) {
		r, err := NewReview(1, MovieTarget(1), 0, "")
		require.NoError(t, err)
		assert.Equal(t, 5, r.Rating)
	})

	t.Run("invalid target rejected", func(t *testing.T) {
		_, err := NewReview(1, ReviewTarget{}, 5, "")
		assert.ErrorIs(t, err, ErrInvalidReviewTarget)

		_, err = NewReview(1, MovieTarget(0), 5, "")
		assert.ErrorIs(t, err, ErrInvalidReviewTarget)
	})
}

func TestReviewTargetRoundTrip(t *testing.T) {
	r, err := NewReview(1, MovieTarget(3), 5, "")
	require.NoError(t, err)

	target := r.Target()
	assert.Equal(t, ContentTypeMovie, target.Type())
	assert.Equal(t, 3, target.ID())
	assert.True(t, target.Valid())
}

func TestReviewValidate(t *testing.T) {
	movieID, showID := 1, 2

	tests := []struct {
		name    string
		review  Review
		wantErr bool
	}{
		{"movie only", Review{UserID: 1, MovieID: &movieID}, false},
		{"tvshow only", Review{UserID: 1, TVShowID: &showID}, false},
		{"both set", Review{UserID: 1, MovieID: &movieID, TVShowID: &showID}, true},
		{"neither set", Review{UserID: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.review.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidReviewTarget)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestContentTypeValid(t *testing.T) {
	assert.True(t, ContentTypeMovie.Valid())
	assert.True(t, ContentTypeTVShow.Valid())
	assert.False(t, ContentType("series").Valid())
	assert.False(t, ContentType("").Valid())
}
