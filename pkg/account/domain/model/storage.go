package model

import (
	"context"
	"errors"
	"io"
)

var (
	ErrNoStorageBuckets    = errors.New("no storage buckets available")
	ErrUnsupportedFileType = errors.New("please upload an image file (JPG, PNG, or GIF)")
	ErrFileTooLarge        = errors.New("please upload an image smaller than 5MB")
)

type ObjectStorage interface {
	Buckets(ctx context.Context) ([]string, error)
	// Upload stores body under bucket/key and returns the stored key. With upsert
	// unset an existing object is an error.
	Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, upsert bool) (string, error)
	PublicURL(bucket, key string) string
}

type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}
