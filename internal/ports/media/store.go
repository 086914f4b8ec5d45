package media

import (
	"context"
	"io"
)

// Object es el resultado de subir un archivo al media store:
// URL pública (o presignada) + key interna para regenerarla después.
type Object struct {
	URL string
	Key string
}

// Store abstrae el backend de imágenes (S3, disco, etc.).
// Solo se usa al crear un listing; el core nunca lee ni borra objetos.
type Store interface {
	Store(ctx context.Context, filename, contentType string, r io.Reader) (Object, error)
}
