// Package gravatar derives the default identicon avatar URL for an email
// address, matching the gravatar convention: an md5 of the normalized address
// with fixed size, rating and fallback parameters.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar"

// URL returns the deterministic avatar URL for an email. The same email
// always maps to the same URL regardless of case or surrounding whitespace.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := md5.Sum([]byte(normalized))
	return fmt.Sprintf("%s/%s?s=200&r=pg&d=mm", baseURL, hex.EncodeToString(sum[:]))
}
