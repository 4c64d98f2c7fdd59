// Package tui is the interactive heat sheet viewer: two lane cards for the
// current heat, a heat picker and a status line.
package tui

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/joseph-ayodele/heat-tracker/internal/parser"
	"github.com/joseph-ayodele/heat-tracker/internal/session"
)

// Loader reads and parses the document being viewed.
type Loader func(ctx context.Context) (parser.Result, error)

const (
	statusLoading = "Bestand laden…"
	statusFailed  = "Kon bestand niet verwerken. Mogelijk is dit een gescande/afbeelding-PDF (geen tekst)."
)

// Viewer owns the tview widgets and the navigation session behind them.
type Viewer struct {
	app     *tview.Application
	session *session.Session
	load    Loader
	logger  *slog.Logger

	// queue runs fn on the UI goroutine; tests replace it with a direct call.
	queue func(fn func())

	header  *tview.TextView
	heatNo  *tview.TextView
	laneA   *tview.TextView
	laneB   *tview.TextView
	list    *tview.List
	status  *tview.TextView
	root    *tview.Flex
	heatIDs []int
}

func NewViewer(load Loader, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Viewer{
		app:     tview.NewApplication(),
		session: session.New(),
		load:    load,
		logger:  logger,
	}
	v.queue = func(fn func()) { v.app.QueueUpdateDraw(fn) }

	v.header = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	v.heatNo = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	v.laneA = newCard("Witte baan (wt)")
	v.laneB = newCard("Rode baan (rd)")

	v.list = tview.NewList().ShowSecondaryText(false).SetHighlightFullLine(true)
	v.list.SetBorder(true).SetTitle("Ritten")
	v.list.SetSelectedFunc(func(i int, _ string, _ string, _ rune) {
		v.selectIndex(i)
	})

	v.status = tview.NewTextView().SetTextAlign(tview.AlignLeft).SetWrap(false)

	cards := tview.NewFlex().
		AddItem(v.laneA, 0, 1, false).
		AddItem(v.laneB, 0, 1, false)
	main := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(v.header, 3, 0, false).
		AddItem(v.heatNo, 1, 0, false).
		AddItem(cards, 0, 1, false)
	body := tview.NewFlex().
		AddItem(main, 0, 3, false).
		AddItem(v.list, 0, 2, true)
	v.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(v.status, 1, 0, false)

	v.app.SetRoot(v.root, true).SetInputCapture(v.handleKey)
	v.render()
	return v
}

func newCard(title string) *tview.TextView {
	card := tview.NewTextView().SetDynamicColors(true)
	card.SetBorder(true).SetTitle(title)
	return card
}

// Run loads the document and blocks until the user quits.
func (v *Viewer) Run() error {
	v.Reload()
	return v.app.Run()
}

// Reload submits a fresh load. Only the most recent submission is applied.
func (v *Viewer) Reload() {
	ticket := v.session.Begin()
	v.status.SetText(statusLoading)
	v.logger.Info("viewer.load.start", "ticket", ticket)

	go func() {
		res, err := v.load(context.Background())
		v.queue(func() { v.apply(ticket, res, err) })
	}()
}

// apply lands a finished load on the UI goroutine. Results of superseded
// loads are dropped, failures included; failures keep the previous heats on screen.
func (v *Viewer) apply(ticket session.Ticket, res parser.Result, err error) {
	if !v.session.IsCurrent(ticket) {
		v.logger.Debug("viewer.load.stale", "ticket", ticket, "failed", err != nil)
		return
	}
	if err != nil {
		v.logger.Error("viewer.load.failed", "ticket", ticket, "error", err)
		v.status.SetText(statusFailed)
		return
	}
	if !v.session.Load(ticket, res.Heats, res.Metadata) {
		v.logger.Debug("viewer.load.stale", "ticket", ticket)
		return
	}
	v.logger.Info("viewer.load.ok",
		"ticket", ticket,
		"heats", len(res.Heats),
		"discarded", res.Diagnostics.Discarded(),
	)
	v.rebuildList(res)
	v.render()
	v.status.SetText(fmt.Sprintf("Klaar. Gevonden ritten: %d", len(res.Heats)))
}

func (v *Viewer) rebuildList(res parser.Result) {
	v.list.Clear()
	v.heatIDs = v.heatIDs[:0]
	for i, label := range parser.HeatList(res.Heats) {
		v.list.AddItem(label, "", 0, nil)
		v.heatIDs = append(v.heatIDs, res.Heats[i].Number)
	}
}

func (v *Viewer) selectIndex(i int) {
	if i < 0 || i >= len(v.heatIDs) {
		return
	}
	if v.session.Select(v.heatIDs[i]) {
		v.render()
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyLeft:
		v.session.Advance(-1)
		v.render()
		return nil
	case tcell.KeyRight:
		v.session.Advance(+1)
		v.render()
		return nil
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'o':
			v.Reload()
			return nil
		case 'q':
			v.app.Stop()
			return nil
		}
	}
	return ev
}

func (v *Viewer) render() {
	st := v.session.Snapshot()
	v.header.SetText(headerText(st.Metadata))

	heat, ok := st.Current()
	if !ok {
		v.heatNo.SetText("Rit —")
		v.laneA.SetText("")
		v.laneB.SetText("")
		return
	}
	v.heatNo.SetText(fmt.Sprintf("[::b]Rit %d[::-]  (%d/%d)", heat.Number, st.Index+1, len(st.Heats)))
	v.laneA.SetText(cardText(heat.LaneA))
	v.laneB.SetText(cardText(heat.LaneB))
	if st.Index < v.list.GetItemCount() && v.list.GetCurrentItem() != st.Index {
		v.list.SetCurrentItem(st.Index)
	}
}
