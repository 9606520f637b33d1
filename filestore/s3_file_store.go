package filestore

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3FileStore mirrors LocalFileStore on top of an S3 bucket with public-read
// objects. Selected when UPLOADS_S3_BUCKET is configured.
type S3FileStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
}

func NewS3FileStore(bucket, region, urlPrefix string) (*S3FileStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket:    bucket,
		urlPrefix: urlPrefix,
		uploader:  s3manager.NewUploader(sess),
	}, nil
}

func (s *S3FileStore) FetchAndStore(ctx context.Context, url string, fileName string) (string, error) {
	response, err := fetch(ctx, url)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, response.StatusCode)
	}

	key, err := storageKey(url, fileName)
	if err != nil {
		return "", err
	}
	return key, s.upload(ctx, key, response.Body)
}

func (s *S3FileStore) Store(ctx context.Context, fileName string, data io.Reader) (string, error) {
	if fileName == "" {
		return "", fmt.Errorf("file name is required")
	}
	return fileName, s.upload(ctx, fileName, data)
}

func (s *S3FileStore) upload(ctx context.Context, key string, data io.Reader) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:    aws.String("public-read"),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   data,
	})
	return err
}

func (s *S3FileStore) GetUrlFromKey(key string) string {
	return s.urlPrefix + "/" + key
}

func (s *S3FileStore) CleanUp() {}
