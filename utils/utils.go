package utils

import (
	"crypto/md5"
	"encoding/hex"
	"math/rand"
	"path/filepath"
	"strings"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// RandomAlphabetString returns a random lower-case string of the given
// length, used for temp DB names in tests.
func RandomAlphabetString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

// TextToMd5Hash returns the hex md5 digest of the input text. Used as the
// fallback storage key when no explicit file name is provided.
func TextToMd5Hash(text string) (string, error) {
	h := md5.New()
	if _, err := h.Write([]byte(text)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// GetUrlExtNameWithDot extracts the extension (including the leading dot)
// from a url or file name, stripping any query string.
func GetUrlExtNameWithDot(url string) string {
	if idx := strings.Index(url, "?"); idx != -1 {
		url = url[:idx]
	}
	return filepath.Ext(url)
}
