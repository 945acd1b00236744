package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// CardStyle sets the geometry of a card image.
type CardStyle struct {
	Width    int
	Padding  int
	PerRow   int
	CellSize int
	Scale    float64
}

// Renderer draws cards with gg.  It is safe for concurrent use: every call
// builds its own context and faces.
type Renderer struct {
	style   CardStyle
	regular *truetype.Font
	bold    *truetype.Font
}

// NewRenderer parses the embedded Go fonts.
func NewRenderer() (*Renderer, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Renderer{
		style:   CardStyle{Width: 420, Padding: 20, PerRow: 8, CellSize: 40, Scale: 2},
		regular: regular,
		bold:    bold,
	}, nil
}

func (r *Renderer) face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:       size * r.style.Scale,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: 4,
		SubPixelsY: 4,
	})
}

// Render returns the PNG of d.  The image is drawn at twice the layout
// size so it stays sharp on phones.
func (r *Renderer) Render(d CardData) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithFields(log.Fields{"duration_ms": time.Since(start).Milliseconds(), "numbers": len(d.Numbers)}).
			Debug("card image generated")
	}()
	if len(d.Numbers) == 0 {
		return nil, fmt.Errorf("card of %q has no numbers", d.Customer)
	}

	st := r.style
	s := st.Scale
	rows := (len(d.Numbers) + st.PerRow - 1) / st.PerRow
	layoutH := 150 + rows*(st.CellSize+8) + 70
	dc := gg.NewContext(int(float64(st.Width)*s), int(float64(layoutH)*s))

	// background and header band
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0.50, 0.11, 0.11)
	dc.DrawRectangle(0, 0, float64(st.Width)*s, 64*s)
	dc.Fill()

	pad := float64(st.Padding)
	title := r.face(r.bold, 20)
	body := r.face(r.regular, 13)
	small := r.face(r.bold, 14)
	text := func(face font.Face, str string, x, y float64) {
		dc.SetFontFace(face)
		dc.DrawString(printable(str), x*s, y*s)
	}

	dc.SetRGB(1, 1, 1)
	text(title, fmt.Sprintf("Rifa #%s", d.RaffleNumber), pad, 30)
	text(body, truncate(d.RaffleName, 48), pad, 52)
	if d.DrawDate != "" {
		dc.SetFontFace(body)
		dc.DrawStringAnchored(printable("Sorteo: "+d.DrawDate), (float64(st.Width)-pad)*s, 30*s, 1, 0)
	}

	dc.SetRGB(0.12, 0.16, 0.22)
	text(small, truncate(d.Customer, 40), pad, 92)
	text(body, d.Phone, pad, 112)
	if d.PaymentMethod != "" {
		text(body, "Pago: "+d.PaymentMethod, pad, 132)
	}

	top := 150.0
	cell := float64(st.CellSize)
	for i, n := range d.Numbers {
		x := pad + float64(i%st.PerRow)*(cell+6)
		y := top + float64(i/st.PerRow)*(cell+8)
		if d.Canceled {
			dc.SetRGB(0.13, 0.77, 0.37)
		} else {
			dc.SetRGB(0.86, 0.92, 1)
		}
		dc.DrawRoundedRectangle(x*s, y*s, cell*s, cell*s, 6*s)
		dc.Fill()
		if d.Canceled {
			dc.SetRGB(1, 1, 1)
		} else {
			dc.SetRGB(0.12, 0.25, 0.69)
		}
		dc.SetFontFace(small)
		dc.DrawStringAnchored(n, (x+cell/2)*s, (y+cell/2)*s, 0.5, 0.35)
	}

	footer := top + float64(rows)*(cell+8) + 28
	dc.SetRGB(0.12, 0.16, 0.22)
	text(small, "Total: "+d.Total, pad, footer)
	if d.Canceled {
		dc.SetRGB(0.13, 0.77, 0.37)
		dc.SetFontFace(small)
		dc.DrawStringAnchored("CANCELADO", (float64(st.Width)-pad)*s, footer*s, 1, 0)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode card png: %w", err)
	}
	return buf.Bytes(), nil
}

// printable swaps glyphs the Go fonts lack.
func printable(s string) string {
	return strings.ReplaceAll(s, "₡", "CRC ")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
