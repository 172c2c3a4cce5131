package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mountaintravels/admin-dashboard/internal/logger"
	"github.com/mountaintravels/admin-dashboard/internal/repository"
	"github.com/mountaintravels/admin-dashboard/internal/response"
	"github.com/mountaintravels/admin-dashboard/internal/storage"
)

// UploadHandler stores tour images and optionally attaches them to a tour.
type UploadHandler struct {
	base
	Images ImageStore
	Tours  TourStore
}

func NewUploadHandler(images ImageStore, tours TourStore, log *logger.Logger) *UploadHandler {
	return &UploadHandler{base: newBase(log, nil), Images: images, Tours: tours}
}

type uploadResp struct {
	Paths   []string `json:"paths"`
	Skipped []string `json:"skipped,omitempty"`
	TourID  string   `json:"tourId,omitempty"`
}

// Upload saves every "images" part that sniffs as an image. Other files are
// skipped; an oversized file fails the whole request.
func (h *UploadHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, "expected multipart form data")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return response.Fail(c, http.StatusBadRequest, "no images uploaded")
	}

	ctx, cancel := storeCtx(c)
	defer cancel()

	tourID := strings.TrimSpace(c.FormValue("tourId"))
	if tourID != "" {
		id, err := repository.ParseID(tourID)
		if err != nil {
			return h.fail(c, err, "tour")
		}
		if _, err := h.Tours.Get(ctx, id); err != nil {
			return h.fail(c, err, "tour")
		}
	}

	var out uploadResp
	for _, fh := range files {
		path, err := h.Images.SaveImage(fh, "tours")
		switch {
		case errors.Is(err, storage.ErrNotImage):
			out.Skipped = append(out.Skipped, fh.Filename)
			continue
		case errors.Is(err, storage.ErrTooLarge):
			h.discard(out.Paths)
			return response.Fail(c, http.StatusBadRequest, err.Error())
		case err != nil:
			h.discard(out.Paths)
			return h.fail(c, err, "upload")
		}
		out.Paths = append(out.Paths, path)
	}
	if len(out.Paths) == 0 {
		return response.Fail(c, http.StatusBadRequest, "no valid images uploaded")
	}

	if tourID != "" {
		id, _ := repository.ParseID(tourID)
		if _, err := h.Tours.AddImages(ctx, id, out.Paths); err != nil {
			h.discard(out.Paths)
			return h.fail(c, err, "tour")
		}
		out.TourID = tourID
	}
	h.log.Info("UPLOAD", strings.Join(out.Paths, ", "))
	return response.Created(c, out, "images uploaded")
}

func (h *UploadHandler) discard(paths []string) {
	for _, p := range paths {
		if err := h.Images.Remove(p); err != nil {
			h.log.Warn("UPLOAD", "remove "+p+": "+err.Error())
		}
	}
}
