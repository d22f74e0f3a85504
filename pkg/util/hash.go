package util

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// HashAddress returns a stable key for an address so archived estimates for
// the same property can be grouped regardless of casing and spacing.
func HashAddress(address string) string {
	normalized := strings.ToLower(CleanAddress(address))
	if normalized == "" {
		return ""
	}
	return hashString(normalized)
}

func hashString(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
