package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashFile returns the hex SHA-256 digest of the artifact name.
func (w *Workspace) HashFile(name string) (string, error) {
	data, err := w.ReadFile(name)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// WriteChecksums hashes every existing file in names and writes the checksum
// file. Missing files are left out.
func (w *Workspace) WriteChecksums(names []string) (map[string]string, error) {
	sums := make(map[string]string, len(names))
	for _, name := range names {
		if !w.Exists(name) {
			continue
		}
		sum, err := w.HashFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to hash %s: %w", name, err)
		}
		sums[name] = sum
	}

	if _, err := w.WriteJSON(Checksums, sums, Indented); err != nil {
		return nil, err
	}
	return sums, nil
}

// ReadChecksums loads the checksum file.
func (w *Workspace) ReadChecksums() (map[string]string, error) {
	var sums map[string]string
	if err := w.ReadJSON(Checksums, &sums); err != nil {
		return nil, err
	}
	return sums, nil
}
