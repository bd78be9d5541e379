package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferMustWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(64)

	bb.MustWrite([]byte{1, 2, 3})
	bb.MustWrite([]byte{4, 5})
	require.Equal(t, []byte{1, 2, 3, 4, 5}, bb.Bytes())
	require.Equal(t, 5, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 64)
}

func TestByteBufferGrowPreservesContent(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite(make([]byte, 16))

	bb.Grow(64)
	assert.GreaterOrEqual(t, bb.Cap(), 80)
	assert.Equal(t, 16, bb.Len())
}

func TestByteBufferExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(4)

	bb.ExtendOrGrow(2)
	require.Equal(t, 2, bb.Len())

	bb.ExtendOrGrow(1024)
	require.Equal(t, 1026, bb.Len())
}

func TestByteBufferPoolGetPutReuse(t *testing.T) {
	p := NewByteBufferPool(128, 1024)

	bb := p.Get()
	require.NotNil(t, bb)
	require.GreaterOrEqual(t, bb.Cap(), 128)

	bb.MustWrite([]byte{9, 9, 9})
	p.Put(bb)

	bb2 := p.Get()
	require.Equal(t, 0, bb2.Len(), "Put should reset the buffer before pooling")
}

func TestByteBufferPoolDiscardsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(64, 256)

	bb := p.Get()
	bb.Grow(1024)
	require.Greater(t, bb.Cap(), 256)

	p.Put(bb)
	for i := 0; i < 8; i++ {
		bb2 := p.Get()
		assert.LessOrEqual(t, bb2.Cap(), 1024, "oversized buffer should not be recycled")
	}
}

func TestByteBufferPoolPutNilIsNoop(t *testing.T) {
	p := NewByteBufferPool(64, 256)
	require.NotPanics(t, func() {
		p.Put(nil)
	})
}

// TestGetScratchBuffer exercises the default scratch pool the way
// archive.Write uses it: acquire, fill, release, reuse.
func TestGetScratchBuffer(t *testing.T) {
	bb := GetScratchBuffer()
	require.NotNil(t, bb)
	require.GreaterOrEqual(t, bb.Cap(), ScratchBufferDefaultSize)

	bb.MustWrite([]byte("a length-prefixed record block"))
	PutScratchBuffer(bb)

	bb2 := GetScratchBuffer()
	require.Equal(t, 0, bb2.Len(), "PutScratchBuffer should reset the buffer")
	PutScratchBuffer(bb2)
}

func TestScratchBufferConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			bb := GetScratchBuffer()
			defer PutScratchBuffer(bb)

			bb.MustWrite([]byte{byte(n)})
			require.Equal(t, 1, bb.Len())
		}(i)
	}
	wg.Wait()
}
