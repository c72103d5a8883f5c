package services

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"sova/models"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/math/fixed"
)

// A4 at 300 DPI. Text positions below are given for this size and scaled
// with the canvas height.
const (
	certificateWidth  = 2480
	certificateHeight = 3508
)

var idColor = color.RGBA{0x4c, 0xfa, 0x11, 0xff}

// PNGCertificateRenderer draws the donor name and id over the tier's
// background image.
type PNGCertificateRenderer struct {
	publicDir string
	width     int
	height    int
	font      *truetype.Font
}

func NewCertificateRenderer(publicDir string) (*PNGCertificateRenderer, error) {
	return newCertificateRenderer(publicDir, certificateWidth, certificateHeight)
}

func newCertificateRenderer(publicDir string, width, height int) (*PNGCertificateRenderer, error) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &PNGCertificateRenderer{publicDir: publicDir, width: width, height: height, font: f}, nil
}

func (r *PNGCertificateRenderer) Render(name, donorID string, tier models.RewardTier) ([]byte, error) {
	background, err := loadImage(filepath.Join(r.publicDir, tier.TemplateKey))
	if err != nil {
		return nil, err
	}

	nameColor, err := parseHexColor(tier.NameColor)
	if err != nil {
		return nil, err
	}

	canvas := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	xdraw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), background, background.Bounds(), draw.Src, nil)

	scale := float64(r.height) / certificateHeight
	r.drawText(canvas, "ID: "+donorID, 25*scale, idColor, float64(r.width)-50*scale, 50*scale, alignRight)
	r.drawText(canvas, name, 180*scale, nameColor, float64(r.width)/2, 750*scale, alignCenter)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

type textAlign int

const (
	alignCenter textAlign = iota
	alignRight
)

func (r *PNGCertificateRenderer) drawText(dst *image.RGBA, text string, size float64, c color.Color, x, y float64, align textAlign) {
	face := truetype.NewFace(r.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}

	advance := drawer.MeasureString(text)
	start := fixed.Int26_6(x * 64)
	switch align {
	case alignCenter:
		start -= advance / 2
	case alignRight:
		start -= advance
	}
	drawer.Dot = fixed.Point26_6{X: start, Y: fixed.Int26_6(y * 64)}
	drawer.DrawString(text)
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode template %s: %w", path, err)
	}
	return img, nil
}

// parseHexColor accepts "#rrggbb".
func parseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	if len(s) != 7 || !strings.HasPrefix(s, "#") {
		return c, fmt.Errorf("invalid colour %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c, nil
}
