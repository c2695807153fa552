package snapshot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cubeclust/blobstore"
	"github.com/hupe1980/cubeclust/codec"
)

func testRecord() *Record {
	e := 1.25
	return &Record{
		NRowClusters:   2,
		NColClusters:   2,
		ConvThreshold:  1e-5,
		MaxIterations:  100,
		NRuns:          5,
		Epsilon:        1e-8,
		RowClusters:    []int{0, 0, 1, 1, 1},
		ColClusters:    []int{0, 0, 1, 1},
		Error:          &e,
		NRunsCompleted: 5,
		NRunsConverged: 4,
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	w := NewWriter(store, "result.json")

	rec := testRecord()
	require.NoError(t, w.Write(ctx, rec))

	got, err := w.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestWriter_IdempotentBytes(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	w := NewWriter(store, "result.json")

	rec := testRecord()
	require.NoError(t, w.Write(ctx, rec))
	first, err := store.Get(ctx, w.Name())
	require.NoError(t, err)

	require.NoError(t, w.Write(ctx, rec))
	second, err := store.Get(ctx, w.Name())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestWriter_NilErrorEncodesAsNull(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	w := NewWriter(store, "result.json", WithCodec(codec.JSON{}))

	rec := testRecord()
	rec.Error = nil
	require.NoError(t, w.Write(ctx, rec))

	data, err := store.Get(ctx, "result.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error":null`)
}

func TestWriter_Compression(t *testing.T) {
	tests := []struct {
		name        string
		compression Compression
		ext         string
	}{
		{"None", CompressionNone, ""},
		{"LZ4", CompressionLZ4, ".lz4"},
		{"ZSTD", CompressionZSTD, ".zst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := blobstore.NewMemoryStore()
			w := NewWriter(store, "result.json", WithCompression(tt.compression))

			assert.Equal(t, "result.json"+tt.ext, w.Name())

			rec := testRecord()
			require.NoError(t, w.Write(ctx, rec))

			got, err := w.Read(ctx)
			require.NoError(t, err)
			assert.Equal(t, rec, got)
		})
	}
}

func TestCompression_String(t *testing.T) {
	assert.Equal(t, "none", CompressionNone.String())
	assert.Equal(t, "lz4", CompressionLZ4.String())
	assert.Equal(t, "zstd", CompressionZSTD.String())
}
