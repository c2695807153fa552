package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Labels []int   `json:"labels"`
	Error  float64 `json:"error"`
}

func TestCodecs_RoundTrip(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			in := record{Labels: []int{0, 1, 1, 0}, Error: 1.5}

			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out record
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)
		})
	}
}

func TestCodecs_DeterministicBytes(t *testing.T) {
	// Idempotent snapshot writes rely on identical values encoding to
	// identical bytes.
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			in := record{Labels: []int{2, 0, 1}, Error: 0.25}
			a := MustMarshal(c, in)
			b := MustMarshal(c, in)
			assert.Equal(t, a, b)
		})
	}
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	c, ok = ByName("go-json")
	require.True(t, ok)
	assert.Equal(t, "go-json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}
