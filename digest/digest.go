// Package digest computes content digests for watched files. Digests are
// compared for equality only, never stored outside a fingerprint cache, so a
// fast non-cryptographic hash is sufficient.
package digest

import (
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

const bufferSize = 32 * 1024 // 32KB buffer for streaming

// Digest is a 64-bit content digest.
type Digest uint64

// String returns the digest in fixed-width hex.
func (d Digest) String() string {
	return fmt.Sprintf("%016x", uint64(d))
}

// File computes the digest of a file's contents using streaming reads.
func File(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	h := xxhash.New()
	buf := make([]byte, bufferSize)

	for {
		n, err := file.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("read file: %w", err)
		}
	}

	return Digest(h.Sum64()), nil
}

// Bytes computes the digest of an in-memory byte slice.
func Bytes(data []byte) Digest {
	return Digest(xxhash.Sum64(data))
}
