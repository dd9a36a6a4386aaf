// Package hmac provides a pooled hash.Hash implementation of HMAC, so
// repeated MESSAGE-INTEGRITY computation does not allocate a new hasher
// per call. The reset-in-place shape here mirrors the standard library's
// crypto/hmac, split out so resetTo (pool.go) can rekey an instance
// in place instead of constructing a fresh one.
package hmac

import "hash"

type hmac struct {
	outer, inner hash.Hash
	ipad, opad   []byte
	blocksize    int
}

// New returns an HMAC hash using the given hash constructor and key. The
// returned hash.Hash is backed by a *hmac so pool.go's resetTo can rekey it.
func New(h func() hash.Hash, key []byte) hash.Hash {
	hm := &hmac{
		outer: h(),
		inner: h(),
	}
	hm.blocksize = blockSize(hm.inner)
	hm.ipad = make([]byte, hm.blocksize)
	hm.opad = make([]byte, hm.blocksize)
	hm.resetTo(key)

	return hm
}

// blockSize reports the block size of h, using the sizer interface hashes
// in the standard library satisfy.
func blockSize(h hash.Hash) int {
	type sizer interface {
		BlockSize() int
	}
	if s, ok := h.(sizer); ok {
		return s.BlockSize()
	}
	return 64
}

func (h *hmac) Write(p []byte) (int, error) { return h.inner.Write(p) }

func (h *hmac) Size() int { return h.outer.Size() }

func (h *hmac) BlockSize() int { return h.blocksize }

func (h *hmac) Reset() {
	h.inner.Reset()
	h.inner.Write(h.ipad) //nolint:errcheck,gosec
}

func (h *hmac) Sum(in []byte) []byte {
	origLen := len(in)
	in = h.inner.Sum(in)
	h.outer.Reset()
	h.outer.Write(h.opad)
	h.outer.Write(in[origLen:])
	return h.outer.Sum(in[:origLen])
}
