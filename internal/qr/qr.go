// Package qr renders profile links as PNG QR codes.
package qr

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// Size is the edge length of generated images in pixels.
const Size = 256

// ProfileURL builds the public profile URL for email under the frontend base.
func ProfileURL(frontendURL, email string) string {
	return strings.TrimSuffix(frontendURL, "/") + "/?user=" + url.QueryEscape(email)
}

// PNG encodes content as a PNG QR code.
func PNG(content string) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, Size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}
