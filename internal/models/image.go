package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// ImageKind distingue cómo se resuelve una referencia de imagen.
type ImageKind int

const (
	ImageNone ImageKind = iota
	ImageStored
	ImageExternal
)

func (k ImageKind) String() string {
	switch k {
	case ImageStored:
		return "stored"
	case ImageExternal:
		return "external"
	default:
		return "none"
	}
}

var ErrInvalidImageRef = errors.New("invalid image reference")

// ImageRef referencia la imagen de un producto. En JSON y BSON se guarda
// como el string image_path de siempre.
type ImageRef struct {
	Kind ImageKind
	Path string
}

// StoredImage crea una referencia a un archivo del almacenamiento propio.
func StoredImage(path string) ImageRef {
	return ImageRef{Kind: ImageStored, Path: path}
}

// ExternalImage crea una referencia a una URL absoluta.
func ExternalImage(u string) ImageRef {
	return ImageRef{Kind: ImageExternal, Path: u}
}

// ParseImageRef clasifica s. Las rutas relativas con ".." se rechazan.
func ParseImageRef(s string) (ImageRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ImageRef{}, nil
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			return ImageRef{}, fmt.Errorf("%w: %q", ErrInvalidImageRef, s)
		}
		return ExternalImage(s), nil
	}

	if strings.Contains(lower, "://") || strings.HasPrefix(s, "//") {
		return ImageRef{}, fmt.Errorf("%w: unsupported scheme in %q", ErrInvalidImageRef, s)
	}
	for _, part := range strings.Split(s, "/") {
		if part == ".." {
			return ImageRef{}, fmt.Errorf("%w: %q escapes the upload directory", ErrInvalidImageRef, s)
		}
	}
	return StoredImage(s), nil
}

func (r ImageRef) IsZero() bool { return r.Kind == ImageNone }

func (r ImageRef) String() string {
	if r.Kind == ImageNone {
		return ""
	}
	return r.Path
}

// URL devuelve la ruta que el navegador debe pedir.
func (r ImageRef) URL() string {
	switch r.Kind {
	case ImageStored:
		if strings.HasPrefix(r.Path, "/") {
			return r.Path
		}
		return "/" + r.Path
	case ImageExternal:
		return r.Path
	default:
		return ""
	}
}

// MarshalJSON solo emite referencias que UnmarshalJSON vuelve a aceptar. Un
// valor heredado inválido sale como "".
func (r ImageRef) MarshalJSON() ([]byte, error) {
	s := r.String()
	if _, err := ParseImageRef(s); err != nil {
		s = ""
	}
	return json.Marshal(s)
}

func (r *ImageRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ImageRef{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: image_path must be a string", ErrInvalidImageRef)
	}
	parsed, err := ParseImageRef(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r ImageRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(r.String())
}

// UnmarshalBSONValue no valida: lo que ya está guardado se clasifica tal cual.
func (r *ImageRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.Null || t == bsontype.Undefined {
		*r = ImageRef{}
		return nil
	}
	s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
	if !ok {
		return fmt.Errorf("%w: stored image_path has type %s", ErrInvalidImageRef, t)
	}
	parsed, err := ParseImageRef(s)
	if err != nil {
		*r = StoredImage(s)
		return nil
	}
	*r = parsed
	return nil
}
