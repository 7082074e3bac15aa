package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/romariotrain/video-catalog/internal/video/domain"
	"github.com/romariotrain/video-catalog/internal/video/models"
	"github.com/romariotrain/video-catalog/internal/video/repository"
)

type VideoRepo struct {
	db *sqlx.DB
}

func NewVideoRepo(db *sqlx.DB) *VideoRepo {
	return &VideoRepo{db: db}
}

// videoRow maps the flat videos table. Media and image slots are
// nullable column groups; relation ids live in join tables keyed by
// insertion position.
type videoRow struct {
	ID                 uuid.UUID `db:"id"`
	Title              string    `db:"title"`
	Description        string    `db:"description"`
	YearLaunched       int       `db:"year_launched"`
	Opened             bool      `db:"opened"`
	Published          bool      `db:"published"`
	Duration           int       `db:"duration"`
	Rating             string    `db:"rating"`
	CreatedAt          time.Time `db:"created_at"`
	ThumbPath          *string   `db:"thumb_path"`
	BannerPath         *string   `db:"banner_path"`
	ThumbHalfPath      *string   `db:"thumb_half_path"`
	MediaFilePath      *string   `db:"media_file_path"`
	MediaEncodedPath   *string   `db:"media_encoded_path"`
	MediaStatus        *string   `db:"media_status"`
	TrailerFilePath    *string   `db:"trailer_file_path"`
	TrailerEncodedPath *string   `db:"trailer_encoded_path"`
	TrailerStatus      *string   `db:"trailer_status"`
}

const videoColumns = `
	id, title, description, year_launched, opened, published, duration, rating, created_at,
	thumb_path, banner_path, thumb_half_path,
	media_file_path, media_encoded_path, media_status,
	trailer_file_path, trailer_encoded_path, trailer_status
`

func (r *VideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	q := `SELECT` + videoColumns + `FROM videos WHERE id = $1`

	var row videoRow
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("video get by id: %w", err)
	}

	video := rowToVideo(&row)

	var err error
	if video.Categories, err = r.relationIDs(ctx, "video_categories", "category_id", id); err != nil {
		return nil, err
	}
	if video.Genres, err = r.relationIDs(ctx, "video_genres", "genre_id", id); err != nil {
		return nil, err
	}
	if video.CastMembers, err = r.relationIDs(ctx, "video_cast_members", "cast_member_id", id); err != nil {
		return nil, err
	}

	return video, nil
}

func (r *VideoRepo) relationIDs(ctx context.Context, table, column string, videoID uuid.UUID) ([]uuid.UUID, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE video_id = $1 ORDER BY position`, column, table)

	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, q, videoID); err != nil {
		return nil, fmt.Errorf("video relations %s: %w", table, err)
	}
	return ids, nil
}

func (r *VideoRepo) Insert(ctx context.Context, tx repository.Tx, v *models.Video) error {
	stx, err := txFrom(tx)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO videos (` + videoColumns + `)
		VALUES (:id, :title, :description, :year_launched, :opened, :published, :duration, :rating, :created_at,
			:thumb_path, :banner_path, :thumb_half_path,
			:media_file_path, :media_encoded_path, :media_status,
			:trailer_file_path, :trailer_encoded_path, :trailer_status)
	`
	if _, err := stx.NamedExecContext(ctx, q, videoToRow(v)); err != nil {
		return fmt.Errorf("video insert: %w", err)
	}

	return r.insertRelations(ctx, stx, v)
}

func (r *VideoRepo) Update(ctx context.Context, tx repository.Tx, v *models.Video) error {
	stx, err := txFrom(tx)
	if err != nil {
		return err
	}

	const q = `
		UPDATE videos
		SET title = :title, description = :description, year_launched = :year_launched,
			opened = :opened, published = :published, duration = :duration, rating = :rating,
			thumb_path = :thumb_path, banner_path = :banner_path, thumb_half_path = :thumb_half_path,
			media_file_path = :media_file_path, media_encoded_path = :media_encoded_path, media_status = :media_status,
			trailer_file_path = :trailer_file_path, trailer_encoded_path = :trailer_encoded_path, trailer_status = :trailer_status
		WHERE id = :id
	`
	res, err := stx.NamedExecContext(ctx, q, videoToRow(v))
	if err != nil {
		return fmt.Errorf("video update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}

	if err := r.deleteRelations(ctx, stx, v.ID); err != nil {
		return err
	}
	return r.insertRelations(ctx, stx, v)
}

func (r *VideoRepo) Delete(ctx context.Context, tx repository.Tx, id uuid.UUID) error {
	stx, err := txFrom(tx)
	if err != nil {
		return err
	}

	if err := r.deleteRelations(ctx, stx, id); err != nil {
		return err
	}

	res, err := stx.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("video delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// insertRelations rewrites the join rows preserving list order. The
// lists are multisets, so position is part of the key.
func (r *VideoRepo) insertRelations(ctx context.Context, stx *sqlx.Tx, v *models.Video) error {
	if err := insertRelation(ctx, stx, "video_categories", "category_id", v.ID, v.Categories); err != nil {
		return err
	}
	if err := insertRelation(ctx, stx, "video_genres", "genre_id", v.ID, v.Genres); err != nil {
		return err
	}
	return insertRelation(ctx, stx, "video_cast_members", "cast_member_id", v.ID, v.CastMembers)
}

func insertRelation(ctx context.Context, stx *sqlx.Tx, table, column string, videoID uuid.UUID, ids []uuid.UUID) error {
	q := fmt.Sprintf(`INSERT INTO %s (video_id, %s, position) VALUES ($1, $2, $3)`, table, column)
	for i, id := range ids {
		if _, err := stx.ExecContext(ctx, q, videoID, id, i); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}
	return nil
}

func (r *VideoRepo) deleteRelations(ctx context.Context, stx *sqlx.Tx, videoID uuid.UUID) error {
	for _, table := range []string{"video_categories", "video_genres", "video_cast_members"} {
		q := fmt.Sprintf(`DELETE FROM %s WHERE video_id = $1`, table)
		if _, err := stx.ExecContext(ctx, q, videoID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

func videoToRow(v *models.Video) *videoRow {
	row := &videoRow{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		YearLaunched: v.YearLaunched,
		Opened:       v.Opened,
		Published:    v.Published,
		Duration:     v.Duration,
		Rating:       string(v.Rating),
		CreatedAt:    v.CreatedAt,
	}
	if v.Thumb != nil {
		row.ThumbPath = &v.Thumb.Path
	}
	if v.Banner != nil {
		row.BannerPath = &v.Banner.Path
	}
	if v.ThumbHalf != nil {
		row.ThumbHalfPath = &v.ThumbHalf.Path
	}
	if v.Media != nil {
		status := string(v.Media.Status)
		row.MediaFilePath = &v.Media.FilePath
		row.MediaStatus = &status
		if v.Media.EncodedPath != "" {
			row.MediaEncodedPath = &v.Media.EncodedPath
		}
	}
	if v.Trailer != nil {
		status := string(v.Trailer.Status)
		row.TrailerFilePath = &v.Trailer.FilePath
		row.TrailerStatus = &status
		if v.Trailer.EncodedPath != "" {
			row.TrailerEncodedPath = &v.Trailer.EncodedPath
		}
	}
	return row
}

func rowToVideo(row *videoRow) *models.Video {
	v := &models.Video{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		YearLaunched: row.YearLaunched,
		Opened:       row.Opened,
		Published:    row.Published,
		Duration:     row.Duration,
		Rating:       models.Rating(row.Rating),
		CreatedAt:    row.CreatedAt,
	}
	if row.ThumbPath != nil {
		v.Thumb = &models.Image{Path: *row.ThumbPath}
	}
	if row.BannerPath != nil {
		v.Banner = &models.Image{Path: *row.BannerPath}
	}
	if row.ThumbHalfPath != nil {
		v.ThumbHalf = &models.Image{Path: *row.ThumbHalfPath}
	}
	if row.MediaFilePath != nil {
		v.Media = mediaFromColumns(*row.MediaFilePath, row.MediaEncodedPath, row.MediaStatus)
	}
	if row.TrailerFilePath != nil {
		v.Trailer = mediaFromColumns(*row.TrailerFilePath, row.TrailerEncodedPath, row.TrailerStatus)
	}
	return v
}

func mediaFromColumns(filePath string, encodedPath, status *string) *models.Media {
	m := &models.Media{FilePath: filePath, Status: domain.MediaPending}
	if encodedPath != nil {
		m.EncodedPath = *encodedPath
	}
	if status != nil {
		m.Status = domain.MediaStatus(*status)
	}
	return m
}
