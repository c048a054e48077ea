package adview

import (
	"context"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/hupe1980/adview/blobstore"
	"github.com/hupe1980/adview/blobstore/minio"
	"github.com/hupe1980/adview/blobstore/s3"
)

// Source schemes.
const (
	SchemeFile  = "file"
	SchemeS3    = "s3"
	SchemeMinIO = "minio"
)

// Source is a parsed file location.
type Source struct {
	// Scheme is SchemeFile, SchemeS3 or SchemeMinIO.
	Scheme string
	// Endpoint is the MinIO host[:port].
	Endpoint string
	// Bucket and Key locate remote objects.
	Bucket string
	Key    string
	// Path is the local path for SchemeFile.
	Path string
}

// Remote reports whether the source must be staged before opening.
func (s Source) Remote() bool { return s.Scheme != SchemeFile }

func (s Source) String() string {
	switch s.Scheme {
	case SchemeS3:
		return "s3://" + s.Bucket + "/" + s.Key
	case SchemeMinIO:
		return "minio://" + s.Endpoint + "/" + s.Bucket + "/" + s.Key
	default:
		return s.Path
	}
}

// ParseSource parses a local path, file://path, s3://bucket/key or
// minio://host[:port]/bucket/key.
func ParseSource(raw string) (Source, error) {
	if raw == "" {
		return Source{}, &ErrInvalidSource{Source: raw, Reason: "empty"}
	}
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return Source{Scheme: SchemeFile, Path: raw}, nil
	}

	switch strings.ToLower(scheme) {
	case SchemeFile:
		if rest == "" {
			return Source{}, &ErrInvalidSource{Source: raw, Reason: "missing path"}
		}
		return Source{Scheme: SchemeFile, Path: rest}, nil
	case SchemeS3:
		u, err := url.Parse(raw)
		if err != nil {
			return Source{}, &ErrInvalidSource{Source: raw, Reason: "malformed URI", cause: err}
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Source{}, &ErrInvalidSource{Source: raw, Reason: "want s3://bucket/key"}
		}
		return Source{Scheme: SchemeS3, Bucket: u.Host, Key: key}, nil
	case SchemeMinIO:
		u, err := url.Parse(raw)
		if err != nil {
			return Source{}, &ErrInvalidSource{Source: raw, Reason: "malformed URI", cause: err}
		}
		bucket, key, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if u.Host == "" || bucket == "" || key == "" {
			return Source{}, &ErrInvalidSource{Source: raw, Reason: "want minio://host[:port]/bucket/key"}
		}
		return Source{Scheme: SchemeMinIO, Endpoint: u.Host, Bucket: bucket, Key: key}, nil
	default:
		return Source{}, &ErrUnsupportedScheme{Scheme: scheme}
	}
}

// store returns the blob store rooted at the source's bucket.
func (o options) store(ctx context.Context, src Source) (blobstore.BlobStore, error) {
	if o.storeResolver != nil {
		if s, ok := o.storeResolver(src); ok {
			return s, nil
		}
	}

	switch src.Scheme {
	case SchemeS3:
		st, err := s3.NewFromConfig(ctx, src.Bucket, "", o.s3ConfigOpts...)
		if err != nil {
			return nil, err
		}
		return st, nil
	case SchemeMinIO:
		creds := o.minioCreds
		if creds == nil {
			creds = minioCredentialsFromEnv()
		}
		st, err := minio.Dial(src.Endpoint, creds.AccessKey, creds.SecretKey, creds.Secure, src.Bucket, "")
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, &ErrUnsupportedScheme{Scheme: src.Scheme}
	}
}

func minioCredentialsFromEnv() *MinIOCredentials {
	secure, _ := strconv.ParseBool(os.Getenv("MINIO_SECURE"))
	return &MinIOCredentials{
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Secure:    secure,
	}
}
