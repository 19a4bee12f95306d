package adapter

import "context"

// Transcriber turns an audio payload into the vendor's transcript object,
// passed through verbatim after the vendor job completes.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (map[string]any, error)
}
