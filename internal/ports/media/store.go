package media

import "context"

// File is an uploaded file held in memory.
type File struct {
	Filename string
	Data     []byte
}

// Store persists uploaded images under an object name.
type Store interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	Delete(ctx context.Context, name string) error
	URL(name string) string
}
