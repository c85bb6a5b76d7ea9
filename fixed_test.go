package scale

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type header struct {
	ID   uint32
	Data [4]byte
}

type headerCodec = Fixed[header]

func TestFixedWireForm(t *testing.T) {
	c := &headerCodec{header{ID: 0xDEADBEEF, Data: [4]byte{1, 2, 3, 4}}}
	enc := Marshal(c)
	assert.Equal(t, []byte{0xEF, 0xBE, 0xAD, 0xDE, 1, 2, 3, 4}, enc)

	var out headerCodec
	require.NoError(t, Unmarshal(enc, &out))
	assert.Equal(t, c.Payload, out.Payload)
}

func TestFixedSizeCache(t *testing.T) {
	c := &headerCodec{header{ID: 1}}
	expectedSize := 8 // uint32(4) + [4]byte(4)

	// The first call populates the cache; later ones must agree.
	assert.Equal(t, expectedSize, c.EncodedFixedSize())
	assert.Equal(t, expectedSize, c.EncodedFixedSize())
	assert.Equal(t, expectedSize, c.SizeHint())
	assert.Equal(t, expectedSize, EncodedSize(c))

	// Verify the cache is shared safely across goroutines.
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c2 := &headerCodec{header{ID: 2}}
			assert.Equal(t, expectedSize, c2.EncodedFixedSize())
		}()
	}
	wg.Wait()
}

func TestFixedTruncatedInput(t *testing.T) {
	c := &headerCodec{header{ID: 1}}
	enc := Marshal(c)

	var out headerCodec
	err := Unmarshal(enc[:len(enc)-1], &out)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFixedSkip(t *testing.T) {
	enc := append(Marshal(&headerCodec{}), 0x42)
	r, _ := NewReader(NewBytesReader(enc))
	Skip(r, &headerCodec{})
	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), b)
}
