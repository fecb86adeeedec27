package interfaces

import "context"

// IBlobStore abstracts the object storage holding service-order photos.
type IBlobStore interface {
	Upload(ctx context.Context, path, contentType string, body []byte) (url string, err error)
	Delete(ctx context.Context, path string) error
}
