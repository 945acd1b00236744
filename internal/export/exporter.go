package export

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/raffle-ticket-sales/internal/deeplink"
	"github.com/iliyamo/raffle-ticket-sales/internal/metrics"
)

// Drawer turns card data into an encoded image.
type Drawer interface {
	Render(CardData) ([]byte, error)
}

// Target is a card on screen.  Its action buttons must not show up in the
// captured image.
type Target interface {
	HideActions()
	ShowActions()
	CardData() CardData
}

// Result is handed to the completion callback of Export.
type Result struct {
	FileName string
	PNG      []byte
	ShareURL string
	Err      error
}

// Exporter captures cards in the background.
type Exporter struct {
	drawer Drawer
	linker deeplink.Linker
	wg     sync.WaitGroup
}

// NewExporter returns an Exporter drawing with d and linking with l.
func NewExporter(d Drawer, l deeplink.Linker) *Exporter {
	return &Exporter{drawer: d, linker: l}
}

// Export hides the actions of t, then renders t on another goroutine.  The
// actions are shown again before done runs, whether rendering worked or
// not.  There is no retry.  done may be nil.
func (e *Exporter) Export(ctx context.Context, t Target, done func(Result)) {
	t.HideActions()
	data := t.CardData()
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		res := Result{
			FileName: FileName(data.RaffleNumber, data.Customer),
			ShareURL: e.linker.WhatsApp(data.Phone, data.ShareText),
		}
		res.PNG, res.Err = e.render(ctx, data)
		t.ShowActions()

		if res.Err != nil {
			metrics.RecordExport("error")
			log.WithFields(log.Fields{"file": res.FileName, "error": res.Err}).Error("card export failed")
		} else {
			metrics.RecordExport("ok")
		}
		if done != nil {
			done(res)
		}
	}()
}

func (e *Exporter) render(ctx context.Context, data CardData) (png []byte, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render panic: %v", r)
		}
	}()
	return e.drawer.Render(data)
}

// Wait blocks until every started export has called back.
func (e *Exporter) Wait() { e.wg.Wait() }
