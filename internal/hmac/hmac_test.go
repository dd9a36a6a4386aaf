// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

package hmac

import (
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"hash"
)

// assertHMACSize panics if h does not report the given size and block size.
// Used by TestAssertBlockSize to sanity-check pool.go never hands out an
// instance built for the wrong underlying hash.
func assertHMACSize(h *hmac, size, blocksize int) {
	if h.Size() != size || h.BlockSize() != blocksize {
		panic("hmac: unexpected size/blocksize")
	}
}

type hmacTest struct {
	hash      func() hash.Hash
	key       []byte
	in        []byte
	out       string
	size      int
	blocksize int
}

// hmacTests are RFC 2202 test cases 1 and 2 for HMAC-SHA1 and RFC 4231
// test case 1 for HMAC-SHA256, enough to exercise the pooled reset path
// against known-good digests.
func hmacTests() []hmacTest {
	return []hmacTest{
		{
			hash:      sha1.New,
			key:       []byte{0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b},
			in:        []byte("Hi There"),
			out:       "b617318655057264e28bc0b6fb378c8ef146be00",
			size:      sha1.Size,
			blocksize: sha1.BlockSize,
		},
		{
			hash:      sha1.New,
			key:       []byte("Jefe"),
			in:        []byte("what do ya want for nothing?"),
			out:       "effcdf6ae5eb2fa2d27416d5f184df9c259a7c79",
			size:      sha1.Size,
			blocksize: sha1.BlockSize,
		},
		{
			hash:      sha256.New,
			key:       []byte{0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b, 0x0b},
			in:        []byte("Hi There"),
			out:       "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
			size:      sha256.Size,
			blocksize: sha256.BlockSize,
		},
	}
}
