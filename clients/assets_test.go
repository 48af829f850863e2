package clients

import (
	"testing"

	"github.com/emzola/bookswap/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicBaseURL(t *testing.T) {
	var cfg config.Config
	cfg.S3.Bucket = "bookswap"
	cfg.S3.Region = "eu-west-1"

	u, err := PublicBaseURL(cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://bookswap.s3.eu-west-1.amazonaws.com", u.String())

	cfg.S3.Endpoint = "http://localhost:9000/"
	u, err = PublicBaseURL(cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/bookswap", u.String())

	cfg.S3.PublicURL = "https://cdn.example.com/"
	u, err = PublicBaseURL(cfg)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", u.String())

	cfg.S3.PublicURL = "cdn.example.com"
	_, err = PublicBaseURL(cfg)
	assert.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	var cfg config.Config
	cfg.S3.Endpoint = "http://localhost:9000"
	cfg.S3.Bucket = "bookswap"
	base, err := PublicBaseURL(cfg)
	require.NoError(t, err)

	tests := []struct {
		url     string
		wantKey string
		wantErr bool
	}{
		{url: "http://localhost:9000/bookswap/photos/1/a.jpg", wantKey: "photos/1/a.jpg"},
		{url: "http://LOCALHOST:9000/bookswap/photos/1/a.jpg", wantKey: "photos/1/a.jpg"},
		{url: "http://localhost:9000/other/photos/1/a.jpg", wantErr: true},
		{url: "https://localhost:9000/bookswap/photos/1/a.jpg", wantErr: true},
		{url: "http://evil.example.com/bookswap/photos/1/a.jpg", wantErr: true},
		{url: "http://localhost:9000/bookswap/", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			key, err := objectKey(base, tt.url)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrForeignAsset)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestAssetsOwns(t *testing.T) {
	var cfg config.Config
	cfg.S3.PublicURL = "https://cdn.example.com"
	base, err := PublicBaseURL(cfg)
	require.NoError(t, err)
	assets := &Assets{base: base}

	assert.True(t, assets.Owns("https://cdn.example.com/photos/1/a.jpg"))
	assert.False(t, assets.Owns("https://cdn.example.com.evil.io/photos/1/a.jpg"))
}
