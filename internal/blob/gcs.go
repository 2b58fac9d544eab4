package blob

import (
	"context"
	"fmt"
	"io"
	"path"

	"cloud.google.com/go/storage"
)

// GCSAvatars stores avatar images in a Google Cloud Storage bucket under
// avatars/<uid>/<filename>.
type GCSAvatars struct {
	client *storage.Client
	bucket string
}

func NewGCSAvatars(client *storage.Client, bucket string) *GCSAvatars {
	return &GCSAvatars{
		client: client,
		bucket: bucket,
	}
}

func (s *GCSAvatars) Upload(ctx context.Context, uid, filename, contentType string, r io.Reader) (string, error) {
	// path.Base strips any directory components a client smuggles in.
	name := fmt.Sprintf("avatars/%s/%s", uid, path.Base(filename))

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("write avatar %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize avatar %s: %w", name, err)
	}
	return name, nil
}
