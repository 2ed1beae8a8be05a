package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orbit struct {
	Lead uint64    `json:"lead"`
	Decs []uint64  `json:"decs"`
	Re   []float64 `json:"re"`
}

func TestByName(t *testing.T) {
	for _, name := range []string{"json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok)
		assert.Equal(t, name, c.Name())
	}
	_, ok := ByName("gob")
	assert.False(t, ok)
}

func TestCodecsAreInterchangeable(t *testing.T) {
	in := orbit{Lead: 3, Decs: []uint64{3, 5, 6}, Re: []float64{1, -0.5, 0.25}}

	for _, enc := range []Codec{JSON{}, GoJSON{}} {
		for _, dec := range []Codec{JSON{}, GoJSON{}} {
			data, err := enc.Marshal(in)
			require.NoError(t, err)

			var out orbit
			require.NoError(t, dec.Unmarshal(data, &out))
			assert.Equal(t, in, out, "%s -> %s", enc.Name(), dec.Name())
		}
	}
}

func TestMustMarshal(t *testing.T) {
	assert.Equal(t, `{"lead":1,"decs":null,"re":null}`, string(MustMarshal(nil, orbit{Lead: 1})))
	assert.Panics(t, func() { MustMarshal(JSON{}, complex(1, 2)) })
}
