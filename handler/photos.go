package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/data/dto"
	"github.com/emzola/bookswap/service"
)

// photoFormField names the multipart field carrying an uploaded photo.
const photoFormField = "photo"

// CreatePhoto godoc
// @Summary Add a photo to a listed book
// @Description A multipart/form-data body uploads the "photo" field to the asset host.
// @Description A JSON body attaches a URL already served by the asset host.
// @Tags photos
// @Accept  mpfd,json
// @Produce json
// @Param token header string true "Bearer token"
// @Param userBookId path int true "ID of the listed book"
// @Param photo formData file false "Photo to upload"
// @Param body body dto.AttachPhotoRequestBody false "Photo to attach"
// @Success 201 {object} data.Photo
// @Failure 400
// @Failure 403
// @Failure 404
// @Failure 502
// @Failure 500
// @Router /v1/books/{userBookId}/photos [post]
func (h *Handler) createPhotoHandler(w http.ResponseWriter, r *http.Request) {
	userBookID, err := h.readIDParam(r, "userBookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	var photo *data.Photo
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		r.Body = http.MaxBytesReader(w, r.Body, data.MaxPhotoSize+1<<20)
		file, err := h.readPhotoPart(r)
		if err != nil {
			h.photoUploadErrorResponse(w, r, err)
			return
		}
		photo, err = h.service.UploadPhoto(r.Context(), user, userBookID, file)
		if err != nil {
			h.photoUploadErrorResponse(w, r, err)
			return
		}
	} else {
		var requestBody dto.AttachPhotoRequestBody
		if err := h.decodeJSON(w, r, &requestBody); err != nil {
			h.badRequestResponse(w, r, err)
			return
		}
		photo, err = h.service.AttachPhoto(r.Context(), user, userBookID, requestBody)
		if err != nil {
			h.photoUploadErrorResponse(w, r, err)
			return
		}
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/books/%d/photos", userBookID))
	if err := h.encodeJSON(w, http.StatusCreated, envelope{"photo": photo}, headers); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// readPhotoPart advances the multipart body to the photo field.
func (h *Handler) readPhotoPart(r *http.Request) (io.Reader, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, &service.ValidationError{Errors: map[string]string{photoFormField: "must be provided"}}
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == photoFormField {
			return part, nil
		}
	}
}

func (h *Handler) photoUploadErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesError):
		h.failedValidationResponse(w, r, &service.ValidationError{Errors: map[string]string{photoFormField: "must not be larger than 5MB"}})
	case errors.Is(err, service.ErrFailedValidation):
		h.failedValidationResponse(w, r, err)
	case errors.Is(err, service.ErrRecordNotFound):
		h.notFoundResponse(w, r)
	case errors.Is(err, service.ErrNotPermitted):
		h.notPermittedResponse(w, r)
	case errors.Is(err, service.ErrUpstream):
		h.upstreamFailureResponse(w, r, err)
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		h.badRequestResponse(w, r, err)
	default:
		h.serverErrorResponse(w, r, err)
	}
}

// ListPhotos godoc
// @Summary List the photos of a listed book
// @Tags photos
// @Produce json
// @Param token header string true "Bearer token"
// @Param userBookId path int true "ID of the listed book"
// @Success 200 {array} data.Photo
// @Failure 404
// @Failure 500
// @Router /v1/books/{userBookId}/photos [get]
func (h *Handler) listPhotosHandler(w http.ResponseWriter, r *http.Request) {
	userBookID, err := h.readIDParam(r, "userBookId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	photos, err := h.service.ListPhotos(r.Context(), user, userBookID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"photos": photos}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// UpdatePhoto godoc
// @Summary Point a photo at another hosted asset
// @Tags photos
// @Accept  json
// @Produce json
// @Param token header string true "Bearer token"
// @Param photoId path int true "ID of the photo"
// @Param body body dto.UpdatePhotoRequestBody true "JSON payload"
// @Success 200 {object} data.Photo
// @Failure 400
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/photos/{photoId} [patch]
func (h *Handler) updatePhotoHandler(w http.ResponseWriter, r *http.Request) {
	photoID, err := h.readIDParam(r, "photoId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.UpdatePhotoRequestBody
	if err := h.decodeJSON(w, r, &requestBody); err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	user := h.contextGetUser(r)
	photo, err := h.service.UpdatePhoto(r.Context(), user, photoID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	if err := h.encodeJSON(w, http.StatusOK, envelope{"photo": photo}, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// DeletePhoto godoc
// @Summary Delete a photo
// @Description asset_deleted reports whether the hosted file was removed as well.
// @Tags photos
// @Produce json
// @Param token header string true "Bearer token"
// @Param photoId path int true "ID of the photo"
// @Success 200
// @Failure 403
// @Failure 404
// @Failure 500
// @Router /v1/photos/{photoId} [delete]
func (h *Handler) deletePhotoHandler(w http.ResponseWriter, r *http.Request) {
	photoID, err := h.readIDParam(r, "photoId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	user := h.contextGetUser(r)
	assetDeleted, err := h.service.DeletePhoto(r.Context(), user, photoID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrNotPermitted):
			h.notPermittedResponse(w, r)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	env := envelope{"message": "photo successfully deleted", "asset_deleted": assetDeleted}
	if err := h.encodeJSON(w, http.StatusOK, env, nil); err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
