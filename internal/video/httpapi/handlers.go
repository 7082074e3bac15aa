package httpapi

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/romariotrain/video-catalog/internal/video/domain"
	"github.com/romariotrain/video-catalog/internal/video/models"
	"github.com/romariotrain/video-catalog/internal/video/service"
)

// 32 MiB in memory before multipart parts spill to disk.
const maxMultipartMemory = 32 << 20

type Handler struct {
	svc    *service.Service
	logger zerolog.Logger
}

func New(svc *service.Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger.With().Str("component", "httpapi").Logger()}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateVideo handles POST /videos as multipart form data: scalar
// metadata and relation ids as values, media files as file parts.
func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	input, err := createInputFromForm(r)
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	video, err := h.svc.CreateVideo(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVideoResponse(video))
}

// VideoByID dispatches /videos/{id} and its subresources.
func (h *Handler) VideoByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/videos/")
	if rest == "" || rest == r.URL.Path {
		writeErrorJSON(w, http.StatusBadRequest, "missing id")
		return
	}

	parts := strings.Split(rest, "/")
	id, err := uuid.Parse(parts[0])
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid id")
		return
	}

	switch {
	case len(parts) == 1:
		switch r.Method {
		case http.MethodGet:
			h.getVideo(w, r, id)
		case http.MethodPut:
			h.updateVideo(w, r, id)
		case http.MethodDelete:
			h.deleteVideo(w, r, id)
		default:
			writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case len(parts) == 2 && parts[1] == "medias":
		if r.Method != http.MethodPost {
			writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.uploadMedias(w, r, id)
	case len(parts) == 2 && parts[1] == "encoding":
		if r.Method != http.MethodPost {
			writeErrorJSON(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.encoding(w, r, id)
	default:
		writeErrorJSON(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) getVideo(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	video, err := h.svc.GetVideo(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVideoResponse(video))
}

func (h *Handler) updateVideo(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()

	var req UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}

	input := service.UpdateVideoInput{
		ID:           id,
		Title:        req.Title,
		Description:  req.Description,
		YearLaunched: req.YearLaunched,
		Opened:       req.Opened,
		Published:    req.Published,
		Duration:     req.Duration,
		Genres:       req.GenresIDs,
	}
	if req.Rating != nil {
		rating, err := models.ParseRating(*req.Rating)
		if err != nil {
			writeErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}
		input.Rating = &rating
	}

	video, err := h.svc.UpdateVideo(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVideoResponse(video))
}

func (h *Handler) deleteVideo(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.svc.DeleteVideo(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadMedias(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	videoFile, err := fileInput(r, "video_file")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}
	trailerFile, err := fileInput(r, "trailer_file")
	if err != nil {
		writeErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	video, err := h.svc.UploadMedias(r.Context(), service.UploadMediasInput{
		VideoID:     id,
		VideoFile:   videoFile,
		TrailerFile: trailerFile,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVideoResponse(video))
}

// encoding receives encoder pipeline callbacks.
func (h *Handler) encoding(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	defer r.Body.Close()

	var req EncodingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid json body")
		return
	}

	var (
		video *models.Video
		err   error
	)
	switch domain.MediaStatus(req.Status) {
	case domain.MediaProcessing:
		video, err = h.svc.MarkAsSentToEncode(r.Context(), id)
	case domain.MediaCompleted:
		video, err = h.svc.MarkAsEncoded(r.Context(), id, req.EncodedPath)
	case domain.MediaError:
		video, err = h.svc.MarkAsEncodeFailed(r.Context(), id)
	default:
		writeErrorJSON(w, http.StatusBadRequest, "unknown status")
		return
	}
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVideoResponse(video))
}

func createInputFromForm(r *http.Request) (service.CreateVideoInput, error) {
	var input service.CreateVideoInput
	var err error

	input.Title = r.FormValue("title")
	input.Description = r.FormValue("description")
	if input.YearLaunched, err = formInt(r, "year_launched"); err != nil {
		return input, err
	}
	if input.Duration, err = formInt(r, "duration"); err != nil {
		return input, err
	}
	input.Opened = r.FormValue("opened") == "true"
	input.Published = r.FormValue("published") == "true"

	if input.Rating, err = models.ParseRating(r.FormValue("rating")); err != nil {
		return input, err
	}

	if input.Categories, err = formIDs(r, "categories_ids"); err != nil {
		return input, err
	}
	if input.Genres, err = formIDs(r, "genres_ids"); err != nil {
		return input, err
	}
	if input.CastMembers, err = formIDs(r, "cast_members_ids"); err != nil {
		return input, err
	}

	if input.Thumb, err = fileInput(r, "thumb"); err != nil {
		return input, err
	}
	if input.Banner, err = fileInput(r, "banner"); err != nil {
		return input, err
	}
	if input.ThumbHalf, err = fileInput(r, "thumb_half"); err != nil {
		return input, err
	}
	if input.Media, err = fileInput(r, "media"); err != nil {
		return input, err
	}
	if input.Trailer, err = fileInput(r, "trailer"); err != nil {
		return input, err
	}

	return input, nil
}

func formInt(r *http.Request, field string) (int, error) {
	raw := r.FormValue(field)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New("invalid " + field)
	}
	return v, nil
}

func formIDs(r *http.Request, field string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, raw := range r.MultipartForm.Value[field] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := uuid.Parse(part)
			if err != nil {
				return nil, errors.New("invalid " + field)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// fileInput returns nil when the part is absent. The filename must
// carry an extension: it becomes part of the storage key.
func fileInput(r *http.Request, field string) (*service.FileInput, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.New("invalid file part " + field)
	}
	ext := extensionOf(header)
	if ext == "" {
		return nil, errors.New("file part " + field + " has no extension")
	}
	return &service.FileInput{
		Reader:    file,
		Extension: ext,
	}, nil
}

func extensionOf(header *multipart.FileHeader) string {
	return strings.TrimPrefix(filepath.Ext(header.Filename), ".")
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var relatedErr *models.RelatedAggregateError

	switch {
	case errors.As(err, &validationErr):
		writeValidationJSON(w, validationErr)
	case errors.As(err, &relatedErr):
		writeErrorJSON(w, http.StatusUnprocessableEntity, relatedErr.Error())
	case errors.Is(err, models.ErrMediaRequired), errors.Is(err, domain.ErrInvalidTransition):
		writeErrorJSON(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeErrorJSON(w, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrInvalidArgument):
		writeErrorJSON(w, http.StatusBadRequest, "invalid argument")
	case errors.Is(err, models.ErrConflict):
		writeErrorJSON(w, http.StatusConflict, "conflict")
	default:
		h.logger.Error().Err(err).Msg("internal error")
		writeErrorJSON(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeValidationJSON(w http.ResponseWriter, err *domain.ValidationError) {
	type violation struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	violations := make([]violation, len(err.Violations))
	for i, v := range err.Violations {
		violations[i] = violation{Field: v.Field, Message: v.Message}
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":      "there are validation errors",
		"violations": violations,
	})
}
