package handlers

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20

// UploadImage accepts the customer's photo as multipart form data and stores
// it under a fresh upload id. The returned URL is what order creation expects
// in image_url.
func (a *App) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "file too large or invalid form data (max 10MB)")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "missing file field")
		return
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(header.Filename))
	if !allowedImageExt(ext) {
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported file type, use jpg, png or webp")
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		a.Logger.Error().Err(err).Msg("read upload")
		a.error(w, http.StatusInternalServerError, "internal", "failed to read upload")
		return
	}

	uploadID := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	key := "uploads/" + uploadID + "/photo" + ext
	if _, err := a.Files.Write(r.Context(), key, data); err != nil {
		a.Logger.Error().Err(err).Str("key", key).Msg("store upload")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store upload")
		return
	}
	a.Logger.Info().Str("upload_id", uploadID).Int("bytes", len(data)).Msg("photo uploaded")

	base := strings.TrimRight(a.Config.PublicBaseURL, "/")
	a.json(w, http.StatusOK, map[string]string{
		"image_url": base + "/api/uploads/" + uploadID + "/photo" + ext,
	})
}

// ServeUpload returns a previously uploaded photo.
func (a *App) ServeUpload(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadID")
	filename := chi.URLParam(r, "filename")
	if !validOrderIDPath(uploadID) || !validOrderIDPath(filename) || !allowedImageExt(path.Ext(filename)) {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid path")
		return
	}
	data, err := a.Files.Read(r.Context(), "uploads/"+uploadID+"/"+filename)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "upload not found")
		return
	}
	serveImage(w, contentTypeForExt(path.Ext(filename)), data)
}
