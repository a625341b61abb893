package assets

import (
	"encoding/base64"
	"fmt"
	"regexp"
)

var dataURIPattern = regexp.MustCompile(`^data:([A-Za-z0-9.+/-]+);base64,(.+)$`)

// EncodeDataURI is the terminal placement policy: the image travels inside
// the record itself, so no external file or bucket has to exist.
func EncodeDataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}

// ParseDataURI decodes an inline reference back into its content type and
// bytes, for serving the image over HTTP.
func ParseDataURI(reference string) (string, []byte, error) {
	match := dataURIPattern.FindStringSubmatch(reference)
	if match == nil {
		return "", nil, fmt.Errorf("not an inline image reference")
	}

	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil {
		return "", nil, fmt.Errorf("invalid inline image payload: %w", err)
	}

	return match[1], data, nil
}
