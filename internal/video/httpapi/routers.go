package httpapi

import "net/http"

func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", h.Health)

	// POST /videos
	mux.HandleFunc("/videos", h.CreateVideo)

	// GET/PUT/DELETE /videos/{id}
	// POST /videos/{id}/medias
	// POST /videos/{id}/encoding
	mux.HandleFunc("/videos/", h.VideoByID)

	return mux
}
