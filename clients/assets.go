package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3Config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/emzola/bookswap/config"
)

// ErrForeignAsset is returned for URLs that do not belong to the asset host.
var ErrForeignAsset = errors.New("url does not reference the asset host")

// NewS3Client configures an S3 client. A configured endpoint selects an
// S3-compatible host addressed path-style.
func NewS3Client(cfg config.Config) (*s3.Client, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")
	awsCfg, err := s3Config.LoadDefaultConfig(context.TODO(), s3Config.WithCredentialsProvider(creds), s3Config.WithRegion(cfg.S3.Region))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.S3.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Assets stores photos in an S3 bucket and maps object keys to public URLs.
type Assets struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	base     *url.URL
}

// NewAssets creates an asset host for the configured bucket.
func NewAssets(client *s3.Client, cfg config.Config) (*Assets, error) {
	base, err := PublicBaseURL(cfg)
	if err != nil {
		return nil, err
	}
	return &Assets{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.S3.Bucket,
		base:     base,
	}, nil
}

// PublicBaseURL is the URL prefix under which uploaded objects are served.
func PublicBaseURL(cfg config.Config) (*url.URL, error) {
	raw := cfg.S3.PublicURL
	switch {
	case raw != "":
	case cfg.S3.Endpoint != "":
		raw = strings.TrimRight(cfg.S3.Endpoint, "/") + "/" + cfg.S3.Bucket
	default:
		raw = "https://" + cfg.S3.Bucket + ".s3." + cfg.S3.Region + ".amazonaws.com"
	}
	u, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse asset host url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("asset host url %q must be absolute", raw)
	}
	return u, nil
}

// Upload stores body under key and returns its public URL.
func (a *Assets) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	_, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: int64(len(body)),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return a.base.JoinPath(key).String(), nil
}

// Delete removes the object behind rawURL.
func (a *Assets) Delete(ctx context.Context, rawURL string) error {
	key, err := objectKey(a.base, rawURL)
	if err != nil {
		return err
	}
	_, err = a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Owns reports whether rawURL points into the asset host.
func (a *Assets) Owns(rawURL string) bool {
	_, err := objectKey(a.base, rawURL)
	return err == nil
}

// objectKey returns the object key of rawURL relative to base. The scheme
// and host must match exactly.
func objectKey(base *url.URL, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ErrForeignAsset
	}
	if !strings.EqualFold(u.Scheme, base.Scheme) || !strings.EqualFold(u.Host, base.Host) {
		return "", ErrForeignAsset
	}
	key, ok := strings.CutPrefix(u.Path, base.Path+"/")
	if !ok || key == "" {
		return "", ErrForeignAsset
	}
	return key, nil
}
