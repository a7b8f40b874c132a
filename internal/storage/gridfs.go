package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultContentType = "application/octet-stream"

// GridFSStore keeps images in MongoDB GridFS. Objects are served back by the API under /images/.
type GridFSStore struct {
	DB      *mongo.Database
	baseURL string
}

// NewGridFSStore creates a store in database dbName. baseURL is the public root of this API.
func NewGridFSStore(client *mongo.Client, dbName, baseURL string) *GridFSStore {
	return &GridFSStore{DB: client.Database(dbName), baseURL: baseURL}
}

func (s *GridFSStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	bucket, err := gridfs.NewBucket(s.DB)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := bucket.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
		if err := bucket.SetReadDeadline(deadline); err != nil {
			return nil, err
		}
	}
	return bucket, nil
}

// Put streams body into GridFS under the file name key.
func (s *GridFSStore) Put(ctx context.Context, key string, body io.Reader, _ int64, contentType string) (string, error) {
	ctx, span := tracer.Start(ctx, "GridFSStore.Put", trace.WithAttributes(
		attribute.String("storage.key", key),
	))
	defer span.End()

	bucket, err := s.bucket(ctx)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("failed to open gridfs bucket: %w", err)
	}

	if contentType == "" {
		contentType = defaultContentType
	}
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	if _, err := bucket.UploadFromStream(key, body, opts); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to upload object")
		return "", fmt.Errorf("failed to upload %s to gridfs: %w", key, err)
	}
	return s.URL(key), nil
}

// Open returns the newest revision of key together with its content type.
func (s *GridFSStore) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	_, span := tracer.Start(ctx, "GridFSStore.Open", trace.WithAttributes(
		attribute.String("storage.key", key),
	))
	defer span.End()

	bucket, err := s.bucket(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open gridfs bucket: %w", err)
	}

	stream, err := bucket.OpenDownloadStreamByName(key)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", ErrObjectNotFound
		}
		span.RecordError(err)
		return nil, "", fmt.Errorf("failed to open %s from gridfs: %w", key, err)
	}

	contentType := defaultContentType
	if file := stream.GetFile(); file != nil && file.Metadata != nil {
		if v, err := file.Metadata.LookupErr("contentType"); err == nil {
			if ct, ok := v.StringValueOK(); ok && ct != "" {
				contentType = ct
			}
		}
	}
	return stream, contentType, nil
}

// Delete removes every revision stored under key.
func (s *GridFSStore) Delete(ctx context.Context, key string) error {
	ctx, span := tracer.Start(ctx, "GridFSStore.Delete", trace.WithAttributes(
		attribute.String("storage.key", key),
	))
	defer span.End()

	bucket, err := s.bucket(ctx)
	if err != nil {
		return fmt.Errorf("failed to open gridfs bucket: %w", err)
	}

	cursor, err := bucket.FindContext(ctx, bson.D{{Key: "filename", Value: key}})
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to look up %s in gridfs: %w", key, err)
	}
	var files []struct {
		ID any `bson:"_id"`
	}
	if err := cursor.All(ctx, &files); err != nil {
		return fmt.Errorf("failed to read %s revisions: %w", key, err)
	}

	for _, f := range files {
		if err := bucket.DeleteContext(ctx, f.ID); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "Failed to delete object")
			return fmt.Errorf("failed to delete %s from gridfs: %w", key, err)
		}
	}
	return nil
}

// URL returns the API URL that serves key.
func (s *GridFSStore) URL(key string) string {
	return s.baseURL + "/images/" + (&url.URL{Path: key}).EscapedPath()
}
