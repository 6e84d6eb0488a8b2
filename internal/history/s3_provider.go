package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3OpTimeout = 5 * time.Second

// S3Provider stores the archive as a single JSON object in S3. It is
// the durable tier for deployments where not even /tmp survives
// between invocations.
type S3Provider struct {
	bucket     string
	key        string
	downloader *manager.Downloader
	uploader   *manager.Uploader
}

// NewS3Provider builds an S3-backed tier from the ambient AWS config.
func NewS3Provider(ctx context.Context, bucket, key string) (*S3Provider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Provider{
		bucket:     bucket,
		key:        key,
		downloader: manager.NewDownloader(client),
		uploader:   manager.NewUploader(client),
	}, nil
}

// Name returns the tier name
func (p *S3Provider) Name() string { return "s3" }

// Writable reports whether this tier accepts writes
func (p *S3Provider) Writable() bool { return true }

// Read downloads and parses the archive object
func (p *S3Provider) Read() (Archive, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s3OpTimeout)
	defer cancel()

	buf := manager.NewWriteAtBuffer(nil)
	_, err := p.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	})
	if err != nil {
		return nil, fmt.Errorf("download s3://%s/%s: %w", p.bucket, p.key, err)
	}

	var archive Archive
	if err := json.Unmarshal(buf.Bytes(), &archive); err != nil {
		return nil, fmt.Errorf("parse s3://%s/%s: %w", p.bucket, p.key, err)
	}
	if archive == nil {
		// An object holding literal "null" parses without error.
		archive = Archive{}
	}
	return archive, nil
}

// Write uploads the archive object
func (p *S3Provider) Write(archive Archive) error {
	data, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s3OpTimeout)
	defer cancel()

	_, err = p.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(p.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload s3://%s/%s: %w", p.bucket, p.key, err)
	}
	return nil
}
