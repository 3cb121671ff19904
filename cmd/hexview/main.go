// Command hexview displays a file as a side-by-side hex and ASCII dump
// inside a windowed terminal UI: a menu bar on F9/F10, a footer bar
// with the key legend, and arrow/page scrolling.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/panekit/panekit/app"
	"github.com/panekit/panekit/cell"
	"github.com/panekit/panekit/config"
	"github.com/panekit/panekit/logging"
	"github.com/panekit/panekit/screen"
	"github.com/panekit/panekit/window"
)

const sampleRate = beep.SampleRate(44100)

type viewer struct {
	app  *app.App
	hex  *window.Window
	text *window.Window

	name   string
	data   []byte
	perRow int
	top    int // first visible data row

	bell      bool
	audioInit bool
}

func newViewer(a *app.App, name string, data []byte, bell bool) (*viewer, error) {
	cols, rows := a.Screen().Size()

	root, err := a.AddWindow("root", rows, cols, 0, 0)
	if err != nil {
		return nil, err
	}
	root.Panel().Bottom()

	rootRows, rootCols := root.Size()
	hexCols := rootCols * 2 / 3
	hex, err := root.Derive("hex", rootRows, hexCols, 0, 0)
	if err != nil {
		return nil, err
	}
	text, err := root.Derive("text", rootRows, rootCols-hexCols, 0, hexCols)
	if err != nil {
		return nil, err
	}
	hex.Box()
	text.Box()

	v := &viewer{app: a, hex: hex, text: text, name: name, data: data, bell: bell}

	// Bytes per row: 9 columns for the offset, 3 per byte, capped at
	// the classic 16.
	_, innerCols := hex.Inner()
	v.perRow = (innerCols - 9) / 3
	if v.perRow < 1 {
		v.perRow = 1
	}
	if v.perRow > 16 {
		v.perRow = 16
	}

	root.SetDrawFunc(func(*window.Window) { v.draw() })

	if err := v.initAudio(); err != nil {
		// Non-fatal, the viewer can run without sound.
		logging.Printf("audio init failed: %v", err)
	}
	return v, nil
}

func (v *viewer) initAudio() error {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		v.audioInit = true
	}
	return err
}

func (v *viewer) cleanup() {
	if v.audioInit {
		speaker.Close()
	}
}

func (v *viewer) playTone(freq float64) {
	if !v.bell {
		return
	}
	if !v.audioInit {
		v.app.Screen().Beep()
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(40*time.Millisecond), sine))
}

func (v *viewer) rowCount() int {
	return (len(v.data) + v.perRow - 1) / v.perRow
}

func (v *viewer) visibleRows() int {
	rows, _ := v.hex.Inner()
	return rows
}

// scroll moves the window over the data by delta rows, clamped so the
// last page stays full when the data allows it.
func (v *viewer) scroll(delta int) {
	max := v.rowCount() - v.visibleRows()
	if max < 0 {
		max = 0
	}
	top := v.top + delta
	if top > max {
		top = max
	}
	if top < 0 {
		top = 0
	}
	if top == v.top {
		v.playTone(220)
		return
	}
	v.top = top
}

func (v *viewer) draw() {
	_, hexCols := v.hex.Inner()
	textRows, textCols := v.text.Inner()

	for i := 0; i < v.visibleRows(); i++ {
		off := (v.top + i) * v.perRow
		hexLine := ""
		textLine := ""
		if off < len(v.data) {
			hexLine = fmt.Sprintf("%08x ", off)
			for j := 0; j < v.perRow && off+j < len(v.data); j++ {
				hexLine += fmt.Sprintf(" %02x", v.data[off+j])
				textLine += printable(v.data[off+j])
			}
		}
		if len(textLine) > textCols {
			textLine = textLine[:textCols]
		}
		v.hex.WriteAt(fmt.Sprintf("%-*s", hexCols, hexLine), i, 0, cell.AttrNormal)
		if i < textRows {
			v.text.WriteAt(fmt.Sprintf("%-*s", textCols, textLine), i, 0, cell.AttrNormal)
		}
	}
}

func printable(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return "."
}

func buildUI(a *app.App, v *viewer, quit func()) error {
	if _, err := a.MenuBar().AddItem("File", []string{"Open", "Save", "Save As", "Exit"}, screen.KeyF10); err != nil {
		return err
	}
	if _, err := a.MenuBar().AddItem("View", []string{"Hex", "Text"}, screen.KeyF9); err != nil {
		return err
	}

	if _, err := a.FooterBar().AddItem("Help", screen.KeyF1, func() {
		v.playTone(880)
		logging.Printf("help requested for %s", v.name)
	}); err != nil {
		return err
	}
	if _, err := a.FooterBar().AddItem("Quit", screen.KeyCtrlQ, quit); err != nil {
		return err
	}

	sm := a.Shortcuts()
	scrolls := map[screen.Key]int{
		screen.KeyUp:       -1,
		screen.KeyDown:     1,
		screen.KeyPageUp:   -v.visibleRows(),
		screen.KeyPageDown: v.visibleRows(),
	}
	for key, delta := range scrolls {
		delta := delta
		if err := sm.Add(key, func() { v.scroll(delta) }, nil); err != nil {
			return err
		}
	}
	return nil
}

func run(cfg config.Config, name string, data []byte) (err error) {
	a, err := app.New(app.Config{
		MenuBar:   true,
		FooterBar: true,
		PollWait:  cfg.PollWait.Std(),
	})
	if err != nil {
		return err
	}
	defer func() {
		screen.HandleCrash(recover())
		a.Close()
	}()

	for _, p := range cfg.Pairs {
		fg, bg := p.Colors()
		a.Screen().RegisterPair(p.ID, fg, bg)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	v, err := newViewer(a, name, data, cfg.Bell)
	if err != nil {
		return err
	}
	defer v.cleanup()

	if err := buildUI(a, v, cancel); err != nil {
		return err
	}

	logging.Printf("viewing %s (%d bytes, %d per row)", name, len(data), v.perRow)
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// sampleData stands in when no file is given: every byte value, so
// both panes have something worth looking at.
func sampleData() []byte {
	data := make([]byte, 512)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func main() {
	cfgPath := flag.String("config", "", "TOML settings file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.LogFile != "" {
		if err := logging.Init(cfg.LogFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer logging.Close()
	}

	name := flag.Arg(0)
	var data []byte
	if name == "" {
		name = "(sample)"
		data = sampleData()
	} else {
		if data, err = os.ReadFile(name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if err := run(cfg, name, data); err != nil {
		logging.Error(err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
