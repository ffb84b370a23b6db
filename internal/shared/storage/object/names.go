package object

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"
	"unicode"
)

const maxFileNameBytes = 120

// ErrInvalidFileName is returned for empty or traversal-looking file names.
var ErrInvalidFileName = errors.New("invalid file name")

// OwnerDir is the storage directory for an owner. Raw user and guest ids
// never appear in keys.
func OwnerDir(ownerID string) string {
	sum := sha256.Sum256([]byte(ownerID))
	return hex.EncodeToString(sum[:])
}

// SafeFileName flattens a client file name into one key segment. Separators
// and control characters become "_", and long names are cut while keeping
// the extension.
func SafeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if strings.Trim(cleaned, "_. ") == "" {
		return "", ErrInvalidFileName
	}
	if len(cleaned) <= maxFileNameBytes {
		return cleaned, nil
	}

	ext := path.Ext(cleaned)
	if len(ext) > 10 {
		ext = ""
	}
	stem := strings.TrimSuffix(cleaned, ext)
	limit := maxFileNameBytes - len(ext)
	// Back off to a rune boundary.
	for limit > 0 && !isRuneStart(stem[limit]) {
		limit--
	}
	return stem[:limit] + ext, nil
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
