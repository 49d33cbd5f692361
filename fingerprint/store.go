package fingerprint

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/grovetools/stamp/errors"
)

// Cache file envelope: a fixed header followed by a gob-encoded snapshot.
// The header makes truncation and partial writes detectable without
// trusting gob to fail cleanly on garbage.
//
//	offset  size  field
//	0       8     magic "grvstamp"
//	8       2     format version, big endian
//	10      8     payload length, big endian
//	18      8     xxhash64 of the payload, big endian
//	26      -     gob payload
const (
	storeMagic   = "grvstamp"
	storeVersion = 1
	headerSize   = 8 + 2 + 8 + 8
)

// writeSnapshot persists a snapshot as a single atomic replace: the bytes
// go to a temp file in the cache file's directory, which is then renamed
// over the cache file. A crash mid-write leaves either the old cache file
// or none, never a half-written one.
func writeSnapshot[K, V any](path string, snap *Snapshot[K, V]) error {
	var payload bytes.Buffer
	if err := gob.NewEncoder(&payload).Encode(snap); err != nil {
		return errors.CacheWriteFailed(path, err)
	}

	header := make([]byte, headerSize)
	copy(header[0:8], storeMagic)
	binary.BigEndian.PutUint16(header[8:10], storeVersion)
	binary.BigEndian.PutUint64(header[10:18], uint64(payload.Len()))
	binary.BigEndian.PutUint64(header[18:26], xxhash.Sum64(payload.Bytes()))

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.CacheWriteFailed(path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.CacheWriteFailed(path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.CacheWriteFailed(path, err)
	}
	if _, err := tmp.Write(payload.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.CacheWriteFailed(path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.CacheWriteFailed(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.CacheWriteFailed(path, err)
	}
	return nil
}

// readSnapshot loads and validates a cache file. A missing file reports
// ErrCodeCacheNotFound; a present but unparseable file reports
// ErrCodeCacheCorrupt. Both are recoverable by the next Update.
func readSnapshot[K, V any](path string) (*Snapshot[K, V], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.CacheNotFound(path)
		}
		return nil, errors.CacheReadFailed(path, err)
	}

	if len(data) < headerSize {
		return nil, errors.CacheCorrupt(path, "truncated header")
	}
	if string(data[0:8]) != storeMagic {
		return nil, errors.CacheCorrupt(path, "bad magic")
	}
	if v := binary.BigEndian.Uint16(data[8:10]); v != storeVersion {
		return nil, errors.CacheCorrupt(path, "unsupported format version")
	}
	payload := data[headerSize:]
	if length := binary.BigEndian.Uint64(data[10:18]); length != uint64(len(payload)) {
		return nil, errors.CacheCorrupt(path, "payload length mismatch")
	}
	if sum := binary.BigEndian.Uint64(data[18:26]); sum != xxhash.Sum64(payload) {
		return nil, errors.CacheCorrupt(path, "checksum mismatch")
	}

	var snap Snapshot[K, V]
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&snap); err != nil {
		return nil, errors.CacheCorrupt(path, "undecodable payload")
	}
	if len(snap.SpecIDs) != len(snap.States) {
		return nil, errors.CacheCorrupt(path, "spec/state misalignment")
	}
	return &snap, nil
}
