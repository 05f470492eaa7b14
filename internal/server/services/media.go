package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	sc "github.com/dmitrijs2005/simpletwitter/internal/server/config"
)

// Seams over the AWS SDK so tests can run without an S3 endpoint.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// MediaKind names a profile image slot.
type MediaKind string

const (
	MediaAvatar MediaKind = "avatar"
	MediaCover  MediaKind = "cover"
)

func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(strings.ToLower(s)) {
	case MediaAvatar:
		return MediaAvatar, nil
	case MediaCover:
		return MediaCover, nil
	default:
		return "", invalid(fmt.Sprintf("unknown media kind %q", s))
	}
}

// MediaService hands out presigned S3 URLs for profile images. Bytes never
// pass through the server.
type MediaService struct {
	config *sc.Config
}

func NewMediaService(config *sc.Config) *MediaService {
	return &MediaService{config: config}
}

func mediaPrefix(accountID int64) string {
	return fmt.Sprintf("accounts/%d/", accountID)
}

// NewMediaKey returns a fresh object key under the account's prefix.
func NewMediaKey(accountID int64, kind MediaKind) string {
	return fmt.Sprintf("%s%s/%s", mediaPrefix(accountID), kind, uuid.NewString())
}

// OwnsMediaKey reports whether key was issued for accountID.
func OwnsMediaKey(accountID int64, key string) bool {
	return strings.HasPrefix(key, mediaPrefix(accountID)) && !strings.Contains(key, "..")
}

func (s *MediaService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// RequestUpload returns a new object key and a presigned PUT URL for it.
func (s *MediaService) RequestUpload(ctx context.Context, accountID int64, kind MediaKind) (key, url string, err error) {
	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", "", storageErr(err)
	}

	bucket := s.config.S3Bucket
	key = NewMediaKey(accountID, kind)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.expiry()))
	if err != nil {
		return "", "", storageErr(err)
	}

	return key, req.URL, nil
}

// DownloadURL returns a presigned GET URL for key, or "" for an empty key.
func (s *MediaService) DownloadURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return "", storageErr(err)
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.expiry()))
	if err != nil {
		return "", storageErr(err)
	}

	return req.URL, nil
}

func (s *MediaService) expiry() time.Duration {
	if s.config.MediaURLExpiry > 0 {
		return s.config.MediaURLExpiry
	}
	return 15 * time.Minute
}
