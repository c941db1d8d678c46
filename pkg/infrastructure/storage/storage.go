package storage

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"
)

var (
	ErrUnknownBucket = errors.New("unknown bucket")
	ErrInvalidKey    = errors.New("invalid object key")
	ErrObjectExists  = errors.New("object already exists")
)

// fileblob keeps object attributes next to the object in a sidecar with this suffix.
const attrsSuffix = ".attrs"

// Storage maps bucket names onto blob buckets and serves their objects from baseURL.
type Storage struct {
	baseURL string
	buckets map[string]*blob.Bucket
}

// NewStorage takes ownership of buckets; Close releases them.
func NewStorage(baseURL string, buckets map[string]*blob.Bucket) (*Storage, error) {
	for name := range buckets {
		if !validName(name) {
			return nil, errors.Wrapf(ErrInvalidKey, "bucket %q", name)
		}
	}
	return &Storage{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		buckets: buckets,
	}, nil
}

// NewLocalStorage opens one fileblob bucket per name, each a directory under root.
func NewLocalStorage(root, baseURL string, names []string) (*Storage, error) {
	buckets := make(map[string]*blob.Bucket, len(names))
	closeAll := func() {
		for _, b := range buckets {
			_ = b.Close()
		}
	}
	for _, name := range names {
		if !validName(name) {
			closeAll()
			return nil, errors.Wrapf(ErrInvalidKey, "bucket %q", name)
		}
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			closeAll()
			return nil, errors.Wrapf(err, "create bucket %q", name)
		}
		b, err := fileblob.OpenBucket(dir, nil)
		if err != nil {
			closeAll()
			return nil, errors.Wrapf(err, "open bucket %q", name)
		}
		buckets[name] = b
	}
	return NewStorage(baseURL, buckets)
}

func (s *Storage) Buckets(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(s.buckets))
	for name := range s.buckets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Storage) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, upsert bool) (string, error) {
	b, ok := s.buckets[bucket]
	if !ok {
		return "", errors.Wrapf(ErrUnknownBucket, "bucket %q", bucket)
	}
	if !validKey(key) {
		return "", errors.Wrapf(ErrInvalidKey, "key %q", key)
	}

	if !upsert {
		exists, err := b.Exists(ctx, key)
		if err != nil {
			return "", errors.Wrap(err, "check object")
		}
		if exists {
			return "", errors.Wrapf(ErrObjectExists, "%s/%s", bucket, key)
		}
	}

	// Cancelling the writer's context discards a partial object.
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	w, err := b.NewWriter(writeCtx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "open object writer")
	}
	written, err := io.Copy(w, body)
	if err != nil {
		cancel()
		_ = w.Close()
		return "", errors.Wrap(err, "write object")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "store object")
	}

	log.WithFields(log.Fields{
		"bucket":      bucket,
		"key":         key,
		"contentType": contentType,
		"size":        written,
	}).Info("object stored")
	return key, nil
}

func (s *Storage) PublicURL(bucket, key string) string {
	return s.baseURL + "/" + url.PathEscape(bucket) + "/" + escapePath(key)
}

// Handler serves GET /{bucket}/{key}; mount it under the path of baseURL.
func (s *Storage) Handler() http.Handler {
	return http.HandlerFunc(s.serveObject)
}

func (s *Storage) serveObject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	name, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	b, ok := s.buckets[name]
	if !ok || !validKey(key) {
		http.NotFound(w, r)
		return
	}

	reader, err := b.NewReader(r.Context(), key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			http.NotFound(w, r)
			return
		}
		log.WithError(err).WithFields(log.Fields{"bucket": name, "key": key}).Error("failed to open object")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer reader.Close()

	if contentType := reader.ContentType(); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	http.ServeContent(w, r, path.Base(key), reader.ModTime(), reader)
}

func (s *Storage) Close() error {
	var firstErr error
	for name, b := range s.buckets {
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = errors.Wrapf(err, "close bucket %q", name)
		}
	}
	return firstErr
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// validKey accepts relative slash-separated keys that stay inside the bucket.
func validKey(key string) bool {
	if key == "" || strings.ContainsRune(key, '\\') || strings.HasSuffix(key, attrsSuffix) {
		return false
	}
	return filepath.IsLocal(filepath.FromSlash(key)) && path.Clean(key) == key
}

func escapePath(key string) string {
	parts := strings.Split(path.Clean("/" + key)[1:], "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
