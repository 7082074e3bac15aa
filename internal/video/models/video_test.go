package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/romariotrain/video-catalog/internal/video/domain"
)

func newVideo(t *testing.T) *Video {
	t.Helper()
	return NewVideo(uuid.New(), time.Now(), VideoParams{
		Title:        "Sample",
		Description:  "Desc",
		YearLaunched: 2024,
		Duration:     120,
		Opened:       true,
		Rating:       Rating12,
	})
}

func TestNewVideo_Defaults(t *testing.T) {
	v := newVideo(t)

	require.Nil(t, v.Thumb)
	require.Nil(t, v.Banner)
	require.Nil(t, v.ThumbHalf)
	require.Nil(t, v.Media)
	require.Nil(t, v.Trailer)
	require.Empty(t, v.Categories)
	require.Empty(t, v.Genres)
	require.Empty(t, v.CastMembers)
}

func TestVideo_Validate(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		want        []domain.FieldError
	}{
		{"valid", "Sample", "Desc", nil},
		{
			"empty title",
			"", "Desc",
			[]domain.FieldError{{Field: "title", Message: "should not be empty"}},
		},
		{
			"long title",
			strings.Repeat("a", MaxTitleLength+1), "Desc",
			[]domain.FieldError{{Field: "title", Message: "should be less or equal 255 characters"}},
		},
		{
			"long description",
			"Sample", strings.Repeat("a", MaxDescriptionLength+1),
			[]domain.FieldError{{Field: "description", Message: "should be less or equal 4000 characters"}},
		},
		{
			"both empty",
			"", "",
			[]domain.FieldError{
				{Field: "title", Message: "should not be empty"},
				{Field: "description", Message: "should not be empty"},
			},
		},
		{
			"boundary lengths pass",
			strings.Repeat("a", MaxTitleLength), strings.Repeat("b", MaxDescriptionLength),
			nil,
		},
		{
			"multi-byte characters counted as characters",
			strings.Repeat("я", 200), "Desc",
			nil,
		},
		{
			"multi-byte boundary passes",
			strings.Repeat("я", MaxTitleLength), strings.Repeat("я", MaxDescriptionLength),
			nil,
		},
		{
			"multi-byte over the limit",
			strings.Repeat("я", MaxTitleLength+1), "Desc",
			[]domain.FieldError{{Field: "title", Message: "should be less or equal 255 characters"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newVideo(t)
			v.Title = tt.title
			v.Description = tt.description

			n := domain.NewNotification()
			v.Validate(n)
			require.Equal(t, tt.want, n.Errors())
		})
	}
}

func TestVideo_Update(t *testing.T) {
	v := newVideo(t)

	v.Update(UpdateVideoParams{
		Title:        "New title",
		Description:  "New desc",
		YearLaunched: 2025,
		Duration:     90,
		Published:    true,
	})
	require.Equal(t, "New title", v.Title)
	require.True(t, v.Published)
	require.Equal(t, Rating12, v.Rating, "nil rating keeps the current one")

	r := Rating18
	v.Update(UpdateVideoParams{Title: "New title", Description: "New desc", Rating: &r})
	require.Equal(t, Rating18, v.Rating)
}

func TestVideo_RelationLists(t *testing.T) {
	v := newVideo(t)
	a, b := uuid.New(), uuid.New()

	v.AddCategory(a)
	v.AddCategory(b)
	v.AddCategory(a) // duplicates are retained
	require.Equal(t, []uuid.UUID{a, b, a}, v.Categories)

	v.RemoveCategory(a) // only the first match goes
	require.Equal(t, []uuid.UUID{b, a}, v.Categories)

	v.RemoveCategory(uuid.New()) // absent id is a no-op
	require.Equal(t, []uuid.UUID{b, a}, v.Categories)

	v.RemoveAllCategories()
	require.Empty(t, v.Categories)

	v.AddGenre(a)
	v.AddCastMember(b)
	v.RemoveGenre(a)
	v.RemoveCastMember(b)
	require.Empty(t, v.Genres)
	require.Empty(t, v.CastMembers)
}

func TestVideo_UpdateMediaResetsEncodeState(t *testing.T) {
	v := newVideo(t)

	v.UpdateMedia("a.mp4")
	require.NoError(t, v.MarkAsSentToEncode())
	require.NoError(t, v.MarkAsEncoded("encoded/a.mp4"))

	v.UpdateMedia("b.mp4")
	require.Equal(t, domain.MediaPending, v.Media.Status)
	require.Empty(t, v.Media.EncodedPath)
	require.Equal(t, "b.mp4", v.Media.FilePath)
}

func TestVideo_EncodeTransitions(t *testing.T) {
	t.Run("without media", func(t *testing.T) {
		v := newVideo(t)
		require.ErrorIs(t, v.MarkAsSentToEncode(), ErrMediaRequired)
		require.ErrorIs(t, v.MarkAsEncoded("p"), ErrMediaRequired)
		require.ErrorIs(t, v.MarkAsEncodeFailed(), ErrMediaRequired)
	})

	t.Run("happy path", func(t *testing.T) {
		v := newVideo(t)
		v.UpdateMedia("a.mp4")
		require.NoError(t, v.MarkAsSentToEncode())
		require.NoError(t, v.MarkAsEncoded("encoded/a.mp4"))
		require.Equal(t, domain.MediaCompleted, v.Media.Status)
	})

	t.Run("completed without processing", func(t *testing.T) {
		v := newVideo(t)
		v.UpdateMedia("a.mp4")
		require.NoError(t, v.MarkAsEncoded("encoded/a.mp4"))
	})

	t.Run("pending cannot fail", func(t *testing.T) {
		v := newVideo(t)
		v.UpdateMedia("a.mp4")
		require.ErrorIs(t, v.MarkAsEncodeFailed(), domain.ErrInvalidTransition)
		require.Equal(t, domain.MediaPending, v.Media.Status)
	})

	t.Run("completed is terminal", func(t *testing.T) {
		v := newVideo(t)
		v.UpdateMedia("a.mp4")
		require.NoError(t, v.MarkAsEncoded("encoded/a.mp4"))
		require.ErrorIs(t, v.MarkAsSentToEncode(), domain.ErrInvalidTransition)
		require.ErrorIs(t, v.MarkAsEncodeFailed(), domain.ErrInvalidTransition)
	})

	t.Run("error is terminal", func(t *testing.T) {
		v := newVideo(t)
		v.UpdateMedia("a.mp4")
		require.NoError(t, v.MarkAsSentToEncode())
		require.NoError(t, v.MarkAsEncodeFailed())
		require.ErrorIs(t, v.MarkAsEncoded("p"), domain.ErrInvalidTransition)
	})

	t.Run("repeat of current state is a no-op", func(t *testing.T) {
		v := newVideo(t)
		v.UpdateMedia("a.mp4")
		require.NoError(t, v.MarkAsSentToEncode())
		require.NoError(t, v.MarkAsSentToEncode())
		require.Equal(t, domain.MediaProcessing, v.Media.Status)
	})
}

func TestParseRating(t *testing.T) {
	for _, raw := range []string{"ER", "L", "10", "12", "14", "16", "18"} {
		got, err := ParseRating(raw)
		require.NoError(t, err)
		require.Equal(t, Rating(raw), got)
	}

	_, err := ParseRating("PG-13")
	require.ErrorIs(t, err, ErrInvalidArgument)
}
