package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/chromaplane/pkg/udg"
)

// hashKey builds "prefix:sha256(json(parts))".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashPoints returns the content hash of a point set and tolerance. The
// hash covers exact bit patterns in order, so it identifies the graph
// udg.Build would produce.
func HashPoints(points []udg.Point, eps float64) string {
	h := sha256.New()
	var buf [8]byte
	write := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		h.Write(buf[:])
	}
	write(eps)
	binary.LittleEndian.PutUint64(buf[:], uint64(len(points)))
	h.Write(buf[:])
	for _, p := range points {
		write(p.X)
		write(p.Y)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// keyType returns the kind of a key ("estimate", "critical", ...): the
// segment before the hash, after any scope prefix.
func keyType(key string) string {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return key
	}
	head := key[:i]
	return head[strings.LastIndexByte(head, ':')+1:]
}
