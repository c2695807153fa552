// Package snapshot persists the state of a clustering session as a
// structured text artifact.
//
// A snapshot holds every input parameter alongside the best-so-far labels
// and counters, so the artifact alone is enough to reproduce or resume an
// analysis. Writes are idempotent: identical records encode to identical
// bytes (the completion timestamp is part of the record, set once by the
// final write).
package snapshot

import (
	"context"

	"github.com/hupe1980/cubeclust/blobstore"
	"github.com/hupe1980/cubeclust/codec"
	"github.com/hupe1980/cubeclust/resource"
)

// Record is the serializable state of a clustering session.
//
// Error is nil until at least one run has completed ("no value yet").
// BandClusters and NBandClusters are empty for co-clustering sessions.
type Record struct {
	// Input parameters
	NRowClusters  int     `json:"nclusters_row"`
	NColClusters  int     `json:"nclusters_col"`
	NBandClusters int     `json:"nclusters_bnd,omitempty"`
	ConvThreshold float64 `json:"conv_threshold"`
	MaxIterations int     `json:"max_iterations"`
	NRuns         int     `json:"nruns"`
	Epsilon       float64 `json:"epsilon"`

	// Outcome
	RowClusters    []int    `json:"row_clusters"`
	ColClusters    []int    `json:"col_clusters"`
	BandClusters   []int    `json:"bnd_clusters,omitempty"`
	Error          *float64 `json:"error"`
	NRunsCompleted int      `json:"nruns_completed"`
	NRunsConverged int      `json:"nruns_converged"`

	// CompletedAt is set (RFC3339) by the unconditional final write.
	CompletedAt string `json:"completed_at,omitempty"`
}

// Writer persists Records to a blob store under a fixed name.
type Writer struct {
	store       blobstore.BlobStore
	name        string
	codec       codec.Codec
	compression Compression
	ctrl        *resource.Controller
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithCodec sets the codec used to encode records.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) WriterOption {
	return func(w *Writer) {
		if c == nil {
			c = codec.Default
		}
		w.codec = c
	}
}

// WithCompression compresses the encoded record before storing it.
// The compression suffix is appended to the blob name.
func WithCompression(c Compression) WriterOption {
	return func(w *Writer) {
		w.compression = c
	}
}

// WithController throttles snapshot writes through the given resource
// controller's IO limit.
func WithController(ctrl *resource.Controller) WriterOption {
	return func(w *Writer) {
		w.ctrl = ctrl
	}
}

// NewWriter creates a snapshot writer storing under name in store.
func NewWriter(store blobstore.BlobStore, name string, opts ...WriterOption) *Writer {
	w := &Writer{
		store: store,
		name:  name,
		codec: codec.Default,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the blob name the writer stores under, including any
// compression suffix.
func (w *Writer) Name() string {
	return w.name + w.compression.Ext()
}

// Write encodes and stores the record. Safe to call repeatedly with the
// same record; the stored bytes are identical each time.
func (w *Writer) Write(ctx context.Context, rec *Record) error {
	data, err := w.codec.Marshal(rec)
	if err != nil {
		return err
	}

	data, err = compress(data, w.compression)
	if err != nil {
		return err
	}

	if err := w.ctrl.AcquireIO(ctx, len(data)); err != nil {
		return err
	}

	return w.store.Put(ctx, w.Name(), data)
}

// Read loads the most recently written record.
func (w *Writer) Read(ctx context.Context) (*Record, error) {
	data, err := w.store.Get(ctx, w.Name())
	if err != nil {
		return nil, err
	}

	data, err = decompress(data, w.compression)
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := w.codec.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
