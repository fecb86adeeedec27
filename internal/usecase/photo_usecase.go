package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"climatec_os/internal/domain/entities"
	"climatec_os/internal/usecase/interfaces"

	"github.com/gosimple/slug"
	"github.com/juju/clock"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoPhotos      = errors.New("no photos to upload")
	ErrPhotoNotFound = errors.New("photo not found")
	ErrPhotoTooLarge = errors.New("photo too large")
)

const (
	photoPathPrefix    = "service-orders"
	defaultPhotoExt    = ".jpg"
	defaultPhotoSlug   = "photo"
	defaultConcurrency = 4
)

// PhotoUpload is a file received for a service order, not yet stored.
// PhotoUpload is one file of a multipart upload. Size is the declared part
// size; Body may be nil when the caller skipped reading an oversized part.
type PhotoUpload struct {
	Name        string
	ContentType string
	Size        int64
	Body        []byte
}

type PhotoFailure struct {
	Name   string
	Reason string
}

// PhotoUploadResult lists what reached the blob store and what did not. Order
// is the service order after the successful photos were appended.
type PhotoUploadResult struct {
	Order    entities.ServiceOrder
	Uploaded []entities.Photo
	Failed   []PhotoFailure
}

type IPhotoUseCase interface {
	Upload(ctx context.Context, orderID string, files []PhotoUpload) (PhotoUploadResult, error)
	Delete(ctx context.Context, orderID, path string) (entities.ServiceOrder, error)
}

type PhotoUseCase struct {
	orders      interfaces.IServiceOrderRepository
	blobs       interfaces.IBlobStore
	clock       clock.Clock
	concurrency int
	maxBytes    int64
}

var _ IPhotoUseCase = (*PhotoUseCase)(nil)

// NewPhotoUseCase bounds parallel uploads to concurrency and rejects files
// bigger than maxBytes (0 disables the check).
func NewPhotoUseCase(orders interfaces.IServiceOrderRepository, blobs interfaces.IBlobStore, clk clock.Clock, concurrency int, maxBytes int64) *PhotoUseCase {
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &PhotoUseCase{
		orders:      orders,
		blobs:       blobs,
		clock:       orWallClock(clk),
		concurrency: concurrency,
		maxBytes:    maxBytes,
	}
}

// Upload stores every file independently. Files that fail are reported and
// the rest are still appended to the order; nothing is retried or rolled back.
func (u *PhotoUseCase) Upload(ctx context.Context, orderID string, files []PhotoUpload) (PhotoUploadResult, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return PhotoUploadResult{}, ErrInvalidServiceOrderID
	}
	if len(files) == 0 {
		return PhotoUploadResult{}, ErrNoPhotos
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return PhotoUploadResult{}, err
	}
	if order.ID == "" {
		return PhotoUploadResult{}, ErrServiceOrderNotFound
	}
	log.Printf("[photo][usecase] upload start order_id=%s files=%d concurrency=%d", orderID, len(files), u.concurrency)

	paths := photoPaths(orderID, u.clock.Now().UnixMilli(), files)
	photos := make([]entities.Photo, len(files))
	failures := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(u.concurrency)
	for i, f := range files {
		g.Go(func() error {
			photos[i], failures[i] = u.uploadOne(ctx, paths[i], f)
			return nil
		})
	}
	_ = g.Wait()

	res := PhotoUploadResult{Order: order}
	for i, f := range files {
		if failures[i] != nil {
			log.Printf("[photo][usecase] upload failed order_id=%s name=%q err=%v", orderID, f.Name, failures[i])
			res.Failed = append(res.Failed, PhotoFailure{Name: f.Name, Reason: failures[i].Error()})
			continue
		}
		res.Uploaded = append(res.Uploaded, photos[i])
	}
	if len(res.Uploaded) == 0 {
		return res, nil
	}

	order.Photos = append(entities.RemotePhotos(order.Photos), res.Uploaded...)
	order.UpdatedAt = u.clock.Now().UTC()
	updated, err := u.orders.Update(ctx, order)
	if err != nil {
		log.Printf("[photo][usecase] order update failed order_id=%s uploaded=%d err=%v", orderID, len(res.Uploaded), err)
		return PhotoUploadResult{}, err
	}
	if updated.ID == "" {
		return PhotoUploadResult{}, ErrServiceOrderNotFound
	}
	res.Order = updated
	log.Printf("[photo][usecase] upload done order_id=%s uploaded=%d failed=%d", orderID, len(res.Uploaded), len(res.Failed))
	return res, nil
}

func (u *PhotoUseCase) uploadOne(ctx context.Context, path string, f PhotoUpload) (entities.Photo, error) {
	size := max(f.Size, int64(len(f.Body)))
	if u.maxBytes > 0 && size > u.maxBytes {
		return entities.Photo{}, fmt.Errorf("%w: %d bytes, limit %d", ErrPhotoTooLarge, size, u.maxBytes)
	}
	if len(f.Body) == 0 {
		return entities.Photo{}, fmt.Errorf("%w: empty file", ErrNoPhotos)
	}

	contentType := f.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(f.Body)
	}
	url, err := u.blobs.Upload(ctx, path, contentType, f.Body)
	if err != nil {
		return entities.Photo{}, err
	}
	return entities.Photo{URL: url, Path: path, Name: f.Name}, nil
}

// Delete removes the blob first and then the list entry, so a failed blob
// delete leaves the order untouched.
func (u *PhotoUseCase) Delete(ctx context.Context, orderID, path string) (entities.ServiceOrder, error) {
	orderID = strings.TrimSpace(orderID)
	path = strings.TrimSpace(path)
	if orderID == "" {
		return entities.ServiceOrder{}, ErrInvalidServiceOrderID
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if order.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}

	idx := -1
	for i, p := range order.Photos {
		if path != "" && p.Path == path {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entities.ServiceOrder{}, ErrPhotoNotFound
	}

	if err := u.blobs.Delete(ctx, path); err != nil {
		log.Printf("[photo][usecase] blob delete failed order_id=%s path=%s err=%v", orderID, path, err)
		return entities.ServiceOrder{}, err
	}

	photos := make([]entities.Photo, 0, len(order.Photos)-1)
	photos = append(photos, order.Photos[:idx]...)
	order.Photos = append(photos, order.Photos[idx+1:]...)
	order.UpdatedAt = u.clock.Now().UTC()

	updated, err := u.orders.Update(ctx, order)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if updated.ID == "" {
		return entities.ServiceOrder{}, ErrServiceOrderNotFound
	}
	return updated, nil
}

// photoPaths builds service-orders/{orderID}/{millis}_{slug}{ext} for each
// file. Repeated names within one batch get a numeric suffix.
func photoPaths(orderID string, millis int64, files []PhotoUpload) []string {
	seen := map[string]int{}
	out := make([]string, len(files))
	for i, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if ext == "" {
			ext = defaultPhotoExt
		}
		base := slug.Make(strings.TrimSuffix(filepath.Base(f.Name), filepath.Ext(f.Name)))
		if base == "" {
			base = defaultPhotoSlug
		}
		seen[base]++
		if n := seen[base]; n > 1 {
			base = fmt.Sprintf("%s-%d", base, n)
		}
		out[i] = fmt.Sprintf("%s/%s/%d_%s%s", photoPathPrefix, orderID, millis, base, ext)
	}
	return out
}
