// Package storage guarda las imágenes subidas en disco o en un bucket S3
// compatible y devuelve la referencia que se persiste en el producto.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"storefront/internal/config"
	"storefront/internal/models"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported image type")
)

// AllowedTypes son los tipos de imagen aceptados, detectados por contenido.
var AllowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// Store persiste un objeto ya validado.
type Store interface {
	Put(ctx context.Context, name, contentType string, body io.ReadSeeker, size int64) (models.ImageRef, error)
}

// Uploader valida archivos multipart antes de pasarlos al Store.
type Uploader struct {
	store    Store
	maxBytes int64
	now      func() time.Time
}

func NewUploader(store Store, maxBytes int64) *Uploader {
	return &Uploader{store: store, maxBytes: maxBytes, now: time.Now}
}

// Save valida y guarda el archivo recibido en el campo field.
func (u *Uploader) Save(ctx context.Context, field string, fh *multipart.FileHeader) (models.ImageRef, error) {
	if fh == nil {
		return models.ImageRef{}, ErrNoFile
	}
	if u.maxBytes > 0 && fh.Size > u.maxBytes {
		return models.ImageRef{}, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, fh.Size, u.maxBytes)
	}

	f, err := fh.Open()
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if u.maxBytes > 0 {
		r = io.LimitReader(f, u.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return models.ImageRef{}, ErrNoFile
	}
	if u.maxBytes > 0 && int64(len(data)) > u.maxBytes {
		return models.ImageRef{}, fmt.Errorf("%w: max %d bytes", ErrTooLarge, u.maxBytes)
	}

	mtype := mimetype.Detect(data)
	contentType := strings.SplitN(mtype.String(), ";", 2)[0]
	if !AllowedTypes[contentType] {
		return models.ImageRef{}, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	name := FileName(field, fh.Filename, mtype.Extension(), u.now())
	return u.store.Put(ctx, name, contentType, bytes.NewReader(data), int64(len(data)))
}

// FileName arma "<field>-<unix ms>-<uuid><ext>". Conserva la extensión
// original si es razonable y si no usa la detectada.
func FileName(field, original, detectedExt string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	if !extPattern.MatchString(ext) {
		ext = detectedExt
	}
	return fmt.Sprintf("%s-%d-%s%s", field, now.UnixMilli(), uuid.NewString(), ext)
}

// NewStore elige el backend configurado. Para disco devuelve también el
// directorio que hay que servir como estático; para S3 queda vacío.
func NewStore(ctx context.Context, up config.UploadsConfig, s3cfg config.S3Config) (Store, string, error) {
	switch up.Backend {
	case "", "disk":
		d, err := NewDiskStore(up.Dir, up.PublicPrefix)
		if err != nil {
			return nil, "", err
		}
		return d, up.Dir, nil
	case "s3":
		if s3cfg.Bucket == "" {
			return nil, "", errors.New("s3 upload backend requires S3_BUCKET")
		}
		client, err := NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, "", err
		}
		return NewS3Store(client, s3cfg.Bucket, s3cfg.PublicURL), "", nil
	default:
		return nil, "", fmt.Errorf("unknown upload backend %q", up.Backend)
	}
}
