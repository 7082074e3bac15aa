package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/romariotrain/video-catalog/internal/video/models"
)

type UpdateVideoRequest struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	YearLaunched int         `json:"year_launched"`
	Opened       bool        `json:"opened"`
	Published    bool        `json:"published"`
	Duration     int         `json:"duration"`
	Rating       *string     `json:"rating,omitempty"`
	GenresIDs    []uuid.UUID `json:"genres_ids,omitempty"`
}

type EncodingRequest struct {
	Status      string `json:"status"`
	EncodedPath string `json:"encoded_path,omitempty"`
}

type VideoResponse struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	YearLaunched   int         `json:"year_launched"`
	Opened         bool        `json:"opened"`
	Published      bool        `json:"published"`
	Duration       int         `json:"duration"`
	Rating         string      `json:"rating"`
	CreatedAt      time.Time   `json:"created_at"`
	CategoriesIDs  []uuid.UUID `json:"categories_ids"`
	GenresIDs      []uuid.UUID `json:"genres_ids"`
	CastMembersIDs []uuid.UUID `json:"cast_members_ids"`

	ThumbFileURL     string `json:"thumb_file_url,omitempty"`
	BannerFileURL    string `json:"banner_file_url,omitempty"`
	ThumbHalfFileURL string `json:"thumb_half_file_url,omitempty"`
	VideoFileURL     string `json:"video_file_url,omitempty"`
	VideoEncodedURL  string `json:"video_encoded_url,omitempty"`
	VideoStatus      string `json:"video_status,omitempty"`
	TrailerFileURL   string `json:"trailer_file_url,omitempty"`
}

func toVideoResponse(v *models.Video) VideoResponse {
	resp := VideoResponse{
		ID:             v.ID,
		Title:          v.Title,
		Description:    v.Description,
		YearLaunched:   v.YearLaunched,
		Opened:         v.Opened,
		Published:      v.Published,
		Duration:       v.Duration,
		Rating:         string(v.Rating),
		CreatedAt:      v.CreatedAt,
		CategoriesIDs:  v.Categories,
		GenresIDs:      v.Genres,
		CastMembersIDs: v.CastMembers,
	}
	if v.Thumb != nil {
		resp.ThumbFileURL = v.Thumb.Path
	}
	if v.Banner != nil {
		resp.BannerFileURL = v.Banner.Path
	}
	if v.ThumbHalf != nil {
		resp.ThumbHalfFileURL = v.ThumbHalf.Path
	}
	if v.Media != nil {
		resp.VideoFileURL = v.Media.FilePath
		resp.VideoEncodedURL = v.Media.EncodedPath
		resp.VideoStatus = string(v.Media.Status)
	}
	if v.Trailer != nil {
		resp.TrailerFileURL = v.Trailer.FilePath
	}
	return resp
}
