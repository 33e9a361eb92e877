package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 300

// Generator renders a payment link as an embeddable image payload.
type Generator interface {
	DataURL(link string) (string, error)
}

// PNGGenerator encodes links as PNG QR codes wrapped in a data URL, the
// payload the payment page embeds directly in an <img> tag.
type PNGGenerator struct {
	size int
}

func NewPNGGenerator(size int) *PNGGenerator {
	if size <= 0 {
		size = defaultSize
	}
	return &PNGGenerator{size: size}
}

func (g *PNGGenerator) DataURL(link string) (string, error) {
	png, err := qrcode.Encode(link, qrcode.Medium, g.size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
