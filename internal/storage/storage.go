package storage

import "context"

// PutOptions conveys snapshot upload destination metadata.
type PutOptions struct {
	Bucket      string
	Key         string
	ContentType string
}

// Service stores serialized data snapshots in remote object storage.
type Service interface {
	PutObject(ctx context.Context, body []byte, opts PutOptions) (string, error)
}
