// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the subset of the S3 client used by S3Store
type s3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Options struct {
	Bucket string
	Region string
	// Prefix is prepended to every pathname to form the object key
	Prefix string
	// Endpoint overrides the S3 endpoint (MinIO, R2, LocalStack); enables path-style addressing
	Endpoint string
	// PublicURL is where objects are publicly readable; defaults to the virtual-hosted bucket URL
	PublicURL string
}

// S3Store keeps blobs as objects in an S3 bucket
type S3Store struct {
	client s3API
	bucket string
	prefix string
	urls   urlMapper
}

var _ Store = (*S3Store)(nil)

// NewS3Store builds a store from the default AWS credential chain
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket required")
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Store(client, opts, awsCfg.Region), nil
}

func newS3Store(client s3API, opts S3Options, region string) *S3Store {
	publicURL := opts.PublicURL
	if publicURL == "" {
		switch {
		case opts.Endpoint != "":
			publicURL = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
		default:
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, region)
		}
	}
	return &S3Store{
		client: client,
		bucket: opts.Bucket,
		prefix: opts.Prefix,
		urls:   newURLMapper(publicURL),
	}
}

func (s *S3Store) List(ctx context.Context, prefix string) ([]Object, error) {
	objects := []Object{}
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix + prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, o := range page.Contents {
			key := aws.ToString(o.Key)
			obj := Object{
				Pathname: strings.TrimPrefix(key, s.prefix),
				URL:      s.urls.url(key),
				Size:     aws.ToInt64(o.Size),
			}
			if o.LastModified != nil {
				obj.UploadedAt = *o.LastModified
			}
			objects = append(objects, obj)
		}
	}
	return objects, nil
}

func (s *S3Store) Fetch(ctx context.Context, url string) ([]byte, error) {
	key, err := s.urls.pathname(url)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return body, nil
}

func (s *S3Store) Put(ctx context.Context, pathname string, body []byte, opts *PutOptions) (Object, error) {
	key := s.prefix + pathname
	contentType := contentTypeOf(opts)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return Object{}, fmt.Errorf("put object %s: %w", key, err)
	}

	return Object{
		Pathname:    pathname,
		URL:         s.urls.url(key),
		ContentType: contentType,
		Size:        int64(len(body)),
	}, nil
}
