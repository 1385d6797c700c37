// Package secrets loads the token signing secret once at startup, either
// from a local file or from an s3://bucket/key object.
package secrets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	ErrNoLocation  = errors.New("secret location not configured")
	ErrEmptySecret = errors.New("secret is empty")
	ErrBadLocation = errors.New("malformed secret location")
	ErrTooLarge    = errors.New("secret exceeds size limit")
)

// maxSecretBytes is the largest secret accepted from a file or object.
const maxSecretBytes = 64 * 1024

// S3Options configures the object storage client used for s3:// locations.
// With empty AccessKey the default AWS credential chain applies.
type S3Options struct {
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	getObject = func(c *s3.Client, ctx context.Context, in *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
		return c.GetObject(ctx, in)
	}
)

// Load returns the secret stored at location. One trailing line ending is
// stripped; an empty result is an error.
func Load(ctx context.Context, location string, opts S3Options) ([]byte, error) {
	if location == "" {
		return nil, ErrNoLocation
	}

	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(location, "s3://") {
		raw, err = loadS3(ctx, location, opts)
	} else {
		raw, err = loadFile(location)
	}
	if err != nil {
		return nil, err
	}

	raw = bytes.TrimSuffix(raw, []byte("\n"))
	raw = bytes.TrimSuffix(raw, []byte("\r"))
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySecret, location)
	}
	return raw, nil
}

func loadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read secret: %w", err)
	}
	defer f.Close()

	b, err := readCapped(f)
	if err != nil {
		return nil, fmt.Errorf("read secret %s: %w", path, err)
	}
	return b, nil
}

// parseS3Location splits s3://bucket/key/with/slashes.
func parseS3Location(location string) (bucket, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrBadLocation, err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrBadLocation, location)
	}
	return bucket, key, nil
}

func loadS3(ctx context.Context, location string, opts S3Options) ([]byte, error) {
	bucket, key, err := parseS3Location(location)
	if err != nil {
		return nil, err
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	out, err := getObject(client, ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", location, err)
	}
	defer out.Body.Close()

	b, err := readCapped(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return b, nil
}

// readCapped reads r fully, failing with ErrTooLarge instead of truncating.
func readCapped(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, maxSecretBytes+1))
	if err != nil {
		return nil, err
	}
	if len(b) > maxSecretBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxSecretBytes)
	}
	return b, nil
}
