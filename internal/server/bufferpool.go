package server

import "sync"

// BufferPool hands out read buffers of one fixed size
type BufferPool struct {
	size int
	pool sync.Pool
}

func NewBufferPool(size int) *BufferPool {
	bp := &BufferPool{size: size}
	bp.pool.New = func() interface{} {
		buf := make([]byte, size)
		return &buf
	}
	return bp
}

// Get returns a buffer of exactly Size() bytes. Contents are left over from
// earlier use; callers only look at what they read into it.
func (bp *BufferPool) Get() []byte {
	buf := bp.pool.Get().(*[]byte)
	return (*buf)[:bp.size]
}

// Put returns a buffer to the pool
func (bp *BufferPool) Put(buf []byte) {
	if cap(buf) != bp.size {
		// non-standard size, let GC handle it
		return
	}
	buf = buf[:bp.size]
	bp.pool.Put(&buf)
}

func (bp *BufferPool) Size() int {
	return bp.size
}
