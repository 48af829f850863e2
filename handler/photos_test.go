package handler

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// uploadRequest builds a multipart request with a single file field.
func uploadRequest(t *testing.T, target, token, field string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, "photo.png")
	require.NoError(t, err)
	_, err = io.Copy(part, bytes.NewReader(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUploadPhotoHandler(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.newUser(t, "alice")
	bob := ts.newUser(t, "bob")
	id := ts.listBook(t, alice, "Dune")
	target := fmt.Sprintf("/v1/books/%d/photos", id)

	tests := []struct {
		name       string
		token      string
		field      string
		content    []byte
		wantStatus int
		wantError  string
	}{
		{name: "png", token: alice, field: "photo", content: pngBytes(t), wantStatus: http.StatusCreated},
		{name: "not the owner", token: bob, field: "photo", content: pngBytes(t), wantStatus: http.StatusForbidden},
		{name: "missing field", token: alice, field: "picture", content: pngBytes(t), wantStatus: http.StatusBadRequest, wantError: "must be provided"},
		{name: "text file", token: alice, field: "photo", content: []byte("hello"), wantStatus: http.StatusBadRequest, wantError: "must be a JPEG, PNG or WebP image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			ts.routes.ServeHTTP(rr, uploadRequest(t, target, tt.token, tt.field, tt.content))
			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeBody(t, rr)["error"].(map[string]any)["photo"])
			}
		})
	}

	rr := ts.do(t, http.MethodGet, target, bob, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	photos := decodeBody(t, rr)["photos"].([]any)
	require.Len(t, photos, 1)
	photo := photos[0].(map[string]any)
	assert.NotEmpty(t, photo["blurhash"])
	assert.True(t, ts.assets.objects[photo["url"].(string)])
}

func TestAttachAndDeletePhotoHandlers(t *testing.T) {
	ts := newTestServer(t)
	alice := ts.newUser(t, "alice")
	id := ts.listBook(t, alice, "Dune")
	target := fmt.Sprintf("/v1/books/%d/photos", id)

	rr := ts.do(t, http.MethodPost, target, alice, map[string]any{"url": "https://elsewhere.example.com/a.png"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["error"], "url")

	rr = ts.do(t, http.MethodPost, target, alice, map[string]any{"url": assetBase + "/photos/a.png"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	photoID := int64(decodeBody(t, rr)["photo"].(map[string]any)["photo_id"].(float64))

	rr = ts.do(t, http.MethodPatch, fmt.Sprintf("/v1/photos/%d", photoID), alice, map[string]any{"url": assetBase + "/photos/b.png"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, assetBase+"/photos/b.png", decodeBody(t, rr)["photo"].(map[string]any)["url"])

	rr = ts.do(t, http.MethodDelete, fmt.Sprintf("/v1/photos/%d", photoID), alice, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decodeBody(t, rr)["asset_deleted"])

	rr = ts.do(t, http.MethodDelete, fmt.Sprintf("/v1/photos/%d", photoID), alice, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
