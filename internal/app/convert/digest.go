package convert

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/heartmarshall/wordnet-yaml/internal/exporter"
)

// Digest hashes every rendered document, names included, so two lexicons
// that serialize to the same files share a digest.
func Digest(docs *exporter.Documents) (string, error) {
	files, _, err := exporter.Render(docs, exporter.ChangeScope{})
	if err != nil {
		return "", fmt.Errorf("render for digest: %w", err)
	}

	h := sha256.New()
	for _, f := range files {
		h.Write([]byte(f.Name))
		h.Write([]byte{0})
		h.Write(f.Data)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
