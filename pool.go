package pixbuf

import "sync"

// Pool is a thread-safe pool for reusing owned dense buffers.
//
// Pool groups buffers by their dimensions, allowing efficient reuse of
// identically-sized buffers. This reduces GC pressure for applications that
// decode or reallocate images of similar sizes repeatedly.
//
// Thread safety: All methods are safe for concurrent use.
type Pool[T any] struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Buffer[T]
	maxSize int // max buffers per bucket
}

// poolKey identifies a bucket of identical extents.
type poolKey struct {
	width  int
	height int
}

// NewPool creates a new buffer pool with the given maximum buffers per bucket.
// A maxPerBucket of 0 means unlimited (use with caution).
func NewPool[T any](maxPerBucket int) *Pool[T] {
	return &Pool[T]{
		buckets: make(map[poolKey][]*Buffer[T]),
		maxSize: maxPerBucket,
	}
}

// Get retrieves a dense buffer from the pool or allocates a new one.
// A reused buffer is cleared (all pixels zeroed).
func (p *Pool[T]) Get(width, height int) (*Buffer[T], error) {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[key] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		slogger().Debug("pixbuf: pool hit", "width", width, "height", height)
		_ = buf.Clear()
		return buf, nil
	}
	p.mu.Unlock()

	slogger().Debug("pixbuf: pool miss", "width", width, "height", height)
	return New[T](width, height)
}

// Put returns a buffer to the pool for reuse. Only dense buffers over Owned
// storage are kept; anything else, nil, or a buffer for a full bucket is
// discarded.
func (p *Pool[T]) Put(buf *Buffer[T]) {
	if buf == nil || !buf.layout.IsDense() {
		return
	}
	if _, ok := buf.src.(Owned[T]); !ok {
		return
	}

	key := poolKey{width: buf.layout.Width, height: buf.layout.Height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, buf)
}

// Len returns the number of buffers currently pooled.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, bucket := range p.buckets {
		n += len(bucket)
	}
	return n
}
