package httpapi

import (
	"context"
	"io"
	"net/http"
	"time"
)

const maxAvatarSize = 10 << 20 // 10MB

// AvatarUploader streams an avatar image into blob storage and returns the
// stored object path.
type AvatarUploader interface {
	Upload(ctx context.Context, uid, filename, contentType string, r io.Reader) (string, error)
}

type AvatarHandler struct {
	avatars AvatarUploader
	timeout time.Duration
}

func NewAvatarHandler(avatars AvatarUploader, timeout time.Duration) *AvatarHandler {
	return &AvatarHandler{
		avatars: avatars,
		timeout: timeout,
	}
}

// Upload handles POST /api/profile/avatar. The file goes under the
// session's own prefix, so one user cannot overwrite another's avatar.
func (h *AvatarHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing avatar file")
		return
	}
	defer file.Close()

	path, err := h.avatars.Upload(ctx, SessionID(r.Context()), header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to upload avatar")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"path": path})
}
