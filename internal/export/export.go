// Package export writes standings series sets to local files or S3.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-ledger/internal/config"
	"github.com/yourusername/race-ledger/internal/standings"
)

// Format is an export encoding
type Format string

// Supported formats
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) contentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Encode renders a series set in the given format
func Encode(set standings.SeriesSet, format Format) ([]byte, error) {
	if format == FormatCSV {
		return set.ToCSV()
	}
	return set.ToJSON()
}

// WriteFile writes an encoded series set to a local file
func WriteFile(filename string, set standings.SeriesSet, format Format) error {
	data, err := Encode(set, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// ObjectPutter is the subset of the S3 client used for publishing
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads series sets to an S3 bucket
type S3Publisher struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *logrus.Entry
}

// NewS3Publisher creates a publisher backed by an S3 client for the
// configured region
func NewS3Publisher(ctx context.Context, cfg config.ExportConfig, log *logrus.Logger) (*S3Publisher, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("export.s3_bucket is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewS3PublisherWithClient(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix, log), nil
}

// NewS3PublisherWithClient creates a publisher using an existing client
func NewS3PublisherWithClient(client ObjectPutter, bucket, prefix string, log *logrus.Logger) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: log.WithField("component", "export"),
	}
}

// ObjectKey returns the key a league's series set is stored under
func (p *S3Publisher) ObjectKey(leagueID, mode string, format Format) string {
	return path.Join(p.prefix, leagueID, mode+"."+string(format))
}

// Publish uploads a series set and returns its object key
func (p *S3Publisher) Publish(ctx context.Context, leagueID, mode string, set standings.SeriesSet, format Format) (string, error) {
	key := p.ObjectKey(leagueID, mode, format)

	data, err := Encode(set, format)
	if err != nil {
		return "", err
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(format.contentType()),
	})
	if err != nil {
		p.logger.WithError(err).WithField("key", key).Error("Standings export failed")
		return "", fmt.Errorf("failed to put object %s/%s: %w", p.bucket, key, err)
	}

	p.logger.WithFields(logrus.Fields{
		"bucket": p.bucket,
		"key":    key,
		"series": len(set),
	}).Info("Standings exported")
	return key, nil
}
