package driver

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// combineDigest: H(content || salt1 || salt2 ...). Порядок salt фиксирован вызывающим.
func combineDigest(content Digest, salts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, s := range salts {
		_, _ = h.Write(s)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// CacheKey identifies a parse result: the file content plus every option that
// can change the outcome.
func CacheKey(contentHash [32]byte, opts Options) Digest {
	schema := []byte{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)}
	return combineDigest(Digest(contentHash), schema, []byte{opts.MaxBraceNesting})
}
