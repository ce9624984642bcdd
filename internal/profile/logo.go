package profile

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultLogoWidth is the pixel width logos are scaled to.
const DefaultLogoWidth = 300

// ScaleLogo decodes an image, scales it to width pixels wide keeping its
// aspect ratio and returns it as a PNG data URL. A width of 0 or less uses
// DefaultLogoWidth.
func ScaleLogo(r io.Reader, width int) (string, error) {
	if width <= 0 {
		width = DefaultLogoWidth
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidLogo, err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return "", fmt.Errorf("%w: empty image", ErrInvalidLogo)
	}

	height := max(1, (b.Dy()*width+b.Dx()/2)/b.Dx())
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return "", fmt.Errorf("profile: encode logo: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
