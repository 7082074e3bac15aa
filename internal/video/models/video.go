package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/romariotrain/video-catalog/internal/video/domain"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 4000
)

// Image is a stored artwork reference. It is owned by the Video and is
// replaced wholesale, never partially mutated.
type Image struct {
	Path string
}

// Media describes a stored audiovisual file together with its encoding
// state. A freshly attached Media always starts pending.
type Media struct {
	FilePath    string
	EncodedPath string
	Status      domain.MediaStatus
}

func NewMedia(filePath string) *Media {
	return &Media{FilePath: filePath, Status: domain.MediaPending}
}

// Video is the aggregate root of the catalog. Relation lists hold
// foreign ids only; the referenced aggregates live in their own
// repositories. The lists are ordered multisets: Add does not
// deduplicate and Remove drops the first match.
type Video struct {
	ID           uuid.UUID
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	Rating       Rating
	CreatedAt    time.Time

	Thumb     *Image
	Banner    *Image
	ThumbHalf *Image
	Media     *Media
	Trailer   *Media

	Categories  []uuid.UUID
	Genres      []uuid.UUID
	CastMembers []uuid.UUID
}

// VideoParams carries the scalar fields set at construction.
type VideoParams struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	Rating       Rating
}

// NewVideo builds the aggregate with empty media slots and relation
// lists. The id and timestamp come from the caller so construction
// stays deterministic.
func NewVideo(id uuid.UUID, createdAt time.Time, p VideoParams) *Video {
	return &Video{
		ID:           id,
		Title:        p.Title,
		Description:  p.Description,
		YearLaunched: p.YearLaunched,
		Opened:       p.Opened,
		Published:    p.Published,
		Duration:     p.Duration,
		Rating:       p.Rating,
		CreatedAt:    createdAt,
	}
}

// Validate pushes every violation into the notification instead of
// stopping at the first one.
func (v *Video) Validate(n *domain.Notification) {
	// Limits are in characters, not bytes.
	if v.Title == "" {
		n.Add("title", "should not be empty")
	} else if utf8.RuneCountInString(v.Title) > MaxTitleLength {
		n.Add("title", fmt.Sprintf("should be less or equal %d characters", MaxTitleLength))
	}

	if v.Description == "" {
		n.Add("description", "should not be empty")
	} else if utf8.RuneCountInString(v.Description) > MaxDescriptionLength {
		n.Add("description", fmt.Sprintf("should be less or equal %d characters", MaxDescriptionLength))
	}
}

// UpdateVideoParams carries the scalar fields for Update. A nil Rating
// keeps the current one.
type UpdateVideoParams struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Published    bool
	Duration     int
	Rating       *Rating
}

func (v *Video) Update(p UpdateVideoParams) {
	v.Title = p.Title
	v.Description = p.Description
	v.YearLaunched = p.YearLaunched
	v.Opened = p.Opened
	v.Published = p.Published
	v.Duration = p.Duration
	if p.Rating != nil {
		v.Rating = *p.Rating
	}
}

func (v *Video) AddCategory(id uuid.UUID)   { v.Categories = append(v.Categories, id) }
func (v *Video) AddGenre(id uuid.UUID)      { v.Genres = append(v.Genres, id) }
func (v *Video) AddCastMember(id uuid.UUID) { v.CastMembers = append(v.CastMembers, id) }

func (v *Video) RemoveCategory(id uuid.UUID)   { v.Categories = removeFirst(v.Categories, id) }
func (v *Video) RemoveGenre(id uuid.UUID)      { v.Genres = removeFirst(v.Genres, id) }
func (v *Video) RemoveCastMember(id uuid.UUID) { v.CastMembers = removeFirst(v.CastMembers, id) }

func (v *Video) RemoveAllCategories()  { v.Categories = nil }
func (v *Video) RemoveAllGenres()      { v.Genres = nil }
func (v *Video) RemoveAllCastMembers() { v.CastMembers = nil }

func removeFirst(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, cur := range ids {
		if cur == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

func (v *Video) UpdateThumb(path string)     { v.Thumb = &Image{Path: path} }
func (v *Video) UpdateBanner(path string)    { v.Banner = &Image{Path: path} }
func (v *Video) UpdateThumbHalf(path string) { v.ThumbHalf = &Image{Path: path} }

// UpdateMedia replaces the media slot with a fresh pending Media. Any
// prior encode progress is discarded.
func (v *Video) UpdateMedia(path string)   { v.Media = NewMedia(path) }
func (v *Video) UpdateTrailer(path string) { v.Trailer = NewMedia(path) }

// MarkAsSentToEncode moves the media slot to processing.
func (v *Video) MarkAsSentToEncode() error {
	if v.Media == nil {
		return ErrMediaRequired
	}
	if err := domain.ValidateTransition(v.Media.Status, domain.MediaProcessing); err != nil {
		return err
	}
	v.Media.Status = domain.MediaProcessing
	return nil
}

// MarkAsEncoded records the encoder output location and completes the
// media slot.
func (v *Video) MarkAsEncoded(encodedPath string) error {
	if v.Media == nil {
		return ErrMediaRequired
	}
	if err := domain.ValidateTransition(v.Media.Status, domain.MediaCompleted); err != nil {
		return err
	}
	v.Media.EncodedPath = encodedPath
	v.Media.Status = domain.MediaCompleted
	return nil
}

// MarkAsEncodeFailed puts the media slot into the terminal error state.
func (v *Video) MarkAsEncodeFailed() error {
	if v.Media == nil {
		return ErrMediaRequired
	}
	if err := domain.ValidateTransition(v.Media.Status, domain.MediaError); err != nil {
		return err
	}
	v.Media.Status = domain.MediaError
	return nil
}
