// Package imgproxy builds signed URLs for the image resizing proxy.
// URLs are pure functions of their inputs and the configured secrets, so
// identical requests always yield byte-identical URLs.
package imgproxy

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"strings"

	"picset/domain"
)

// gravityCodes translates gravity values to the proxy's positional codes.
var gravityCodes = map[domain.Gravity]string{
	domain.GravityNorth:     "no",
	domain.GravitySouth:     "so",
	domain.GravityEast:      "ea",
	domain.GravityWest:      "we",
	domain.GravityNorthEast: "noea",
	domain.GravityNorthWest: "nowe",
	domain.GravitySouthEast: "soea",
	domain.GravitySouthWest: "sowe",
	domain.GravityCenter:    "ce",
	domain.GravitySmart:     "sm",
}

// Signer handles HMAC-SHA256 signing for image proxy URLs.
type Signer struct {
	scheme string
	host   string
	key    []byte
	salt   []byte
}

// NewSigner decodes the hex-encoded signing key and salt once at startup.
func NewSigner(scheme, host, keyHex, saltHex string) (*Signer, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("decode signing key: %w", err)
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return nil, fmt.Errorf("decode signing salt: %w", err)
	}
	return &Signer{scheme: scheme, host: host, key: key, salt: salt}, nil
}

// Sign produces the final proxy URL for one source image:
// scheme://host/<signature>/resize:fill:<w>:<h>:1:1/gravity:<g>/<base64-source><ext>.
// The signature is HMAC-SHA256 over salt||path, URL-safe base64 without
// padding. Width 0 is the "infer from source" sentinel.
func (s *Signer) Sign(sourceURI, key string, width, height int, gravity domain.Gravity) (string, error) {
	code, ok := gravityCodes[gravity]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedGravity, gravity)
	}

	encoded := base64.RawURLEncoding.EncodeToString([]byte(sourceURI)) + extensionFor(sourceURI, key)
	p := fmt.Sprintf("/resize:fill:%d:%d:1:1/gravity:%s/%s", width, height, code, encoded)

	mac := hmac.New(sha256.New, s.key)
	mac.Write(s.salt)
	mac.Write([]byte(p))
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))

	return fmt.Sprintf("%s://%s/%s%s", s.scheme, s.host, sig, p), nil
}

// extensionFor derives the output extension from the source path. Keys with
// a "logo_" prefix keep the source extension unconditionally; otherwise PNG
// is forced to JPEG since proxy-served assets do not need transparency.
func extensionFor(sourceURI, key string) string {
	ext := path.Ext(sourcePath(sourceURI))
	if strings.HasPrefix(key, "logo_") {
		return ext
	}
	if ext == ".png" {
		return ".jpg"
	}
	return ext
}

// sourcePath extracts the path component of a URI, falling back to the raw
// string for bare filesystem paths.
func sourcePath(sourceURI string) string {
	if u, err := url.Parse(sourceURI); err == nil && u.Path != "" {
		return u.Path
	}
	return sourceURI
}
