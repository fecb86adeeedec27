package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"climatec_os/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

type recordedRequest struct {
	method      string
	path        string
	contentType string
	body        string
}

func newFakeS3(t *testing.T, status int) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{method: r.Method, path: r.URL.Path, contentType: r.Header.Get("Content-Type"), body: string(b)})
		mu.Unlock()
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, &reqs
}

func newStore(endpoint string, storageCfg config.Storage) *S3BlobStore {
	awsCfg := aws.Config{
		Region:           "us-east-1",
		Credentials:      credentials.NewStaticCredentialsProvider("local", "local", ""),
		RetryMaxAttempts: 1,
	}
	client := NewS3Client(awsCfg, config.AWS{S3Endpoint: endpoint})
	return NewS3BlobStore(client, "us-east-1", storageCfg)
}

func TestS3BlobStore_Upload(t *testing.T) {
	srv, reqs := newFakeS3(t, http.StatusOK)
	store := newStore(srv.URL, config.Storage{Bucket: "photos", PublicBaseURL: "http://cdn.local/photos/"})

	url, err := store.Upload(context.Background(), "service-orders/os-1/1700000000000_split.jpg", "image/jpeg", []byte("jpeg-bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "http://cdn.local/photos/service-orders/os-1/1700000000000_split.jpg" {
		t.Fatalf("unexpected url: %s", url)
	}

	if len(*reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(*reqs))
	}
	got := (*reqs)[0]
	if got.method != http.MethodPut || got.path != "/photos/service-orders/os-1/1700000000000_split.jpg" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.contentType != "image/jpeg" || got.body != "jpeg-bytes" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestS3BlobStore_UploadError(t *testing.T) {
	srv, _ := newFakeS3(t, http.StatusForbidden)
	store := newStore(srv.URL, config.Storage{Bucket: "photos"})

	if _, err := store.Upload(context.Background(), "a.jpg", "", []byte("x")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestS3BlobStore_Delete(t *testing.T) {
	srv, reqs := newFakeS3(t, http.StatusNoContent)
	store := newStore(srv.URL, config.Storage{Bucket: "photos"})

	if err := store.Delete(context.Background(), "service-orders/os-1/a.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*reqs) != 1 || (*reqs)[0].method != http.MethodDelete || (*reqs)[0].path != "/photos/service-orders/os-1/a.jpg" {
		t.Fatalf("unexpected requests: %+v", *reqs)
	}
}

func TestS3BlobStore_URL(t *testing.T) {
	store := &S3BlobStore{bucket: "photos", region: "sa-east-1"}
	if got := store.URL("service-orders/os 1/a.jpg"); got != "https://photos.s3.sa-east-1.amazonaws.com/service-orders/os%201/a.jpg" {
		t.Fatalf("unexpected url: %s", got)
	}
}
