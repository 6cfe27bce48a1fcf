package view

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/lifegrid/model"
)

const (
	viewField  = "battlefield"
	viewStatus = "status"
	viewHelp   = "help"

	leftColumnWidth = 28
)

// Reseeder builds a fresh engine when the user asks for a new seed
type Reseeder func() (*model.Engine, error)

type keyBinding struct {
	key     interface{}
	name    string
	descr   string
	handler func() error
}

// ConsoleUI is an interactive terminal viewer: step, run, stop and reseed from the keyboard.
// Every engine access goes through mu because key handlers and the ticker run on different goroutines.
type ConsoleUI struct {
	mu       sync.Mutex
	eng      *model.Engine
	reseed   Reseeder
	interval time.Duration
	running  bool
	logger   *slog.Logger

	g    *gocui.Gui
	keys []keyBinding
}

func NewConsoleUI(eng *model.Engine, interval time.Duration, reseed Reseeder, logger *slog.Logger) *ConsoleUI {
	if logger == nil {
		logger = slog.Default()
	}
	t := &ConsoleUI{eng: eng, interval: interval, reseed: reseed, logger: logger}
	t.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit},
		{'q', "Q", "Exit", t.cmdQuit},
		{'n', "N", "Next step", t.cmdNextStep},
		{'r', "R", "Run", t.cmdRun},
		{'s', "S", "Stop", t.cmdStop},
		{'c', "C", "Reseed", t.cmdReseed},
	}
	return t
}

// Start runs the UI until the user quits or ctx is cancelled
func (t *ConsoleUI) Start(ctx context.Context) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return errors.Wrap(err, "[ConsoleUI.Start] failed to create terminal ui")
	}
	defer g.Close()

	t.mu.Lock()
	t.g = g
	t.mu.Unlock()

	g.SetManagerFunc(t.layout)
	for _, kb := range t.keys {
		h := kb.handler
		if err := g.SetKeybinding("", kb.key, gocui.ModNone, func(*gocui.Gui, *gocui.View) error { return h() }); err != nil {
			return errors.Wrapf(err, "[ConsoleUI.Start] failed to bind key %s", kb.name)
		}
	}

	loopCtx, cancel := context.WithCancel(ctx)
	loopDone := make(chan struct{})
	eg, gctx := errgroup.WithContext(loopCtx)
	eg.Go(func() error {
		defer cancel()
		defer close(loopDone)
		if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
			return errors.Wrap(err, "[ConsoleUI.Start] main loop failed")
		}
		return nil
	})
	eg.Go(func() error {
		t.tick(gctx)
		if ctx.Err() != nil {
			requestQuit(loopDone, g.Update)
		}
		return nil
	})
	return eg.Wait()
}

// requestQuit asks a running main loop to stop. gocui delivers updates from a goroutine that
// blocks until the loop receives them, so nothing is sent once the loop has returned.
func requestQuit(loopDone <-chan struct{}, update func(func(*gocui.Gui) error)) {
	select {
	case <-loopDone:
	default:
		update(func(*gocui.Gui) error { return gocui.ErrQuit })
	}
}

// tick steps the engine once per interval while in run mode
func (t *ConsoleUI) tick(ctx context.Context) {
	interval := t.interval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.mu.Lock()
			running := t.running
			if running {
				t.eng.Step()
			}
			t.mu.Unlock()
			if running {
				t.refresh()
			}
		}
	}
}

func (t *ConsoleUI) cmdQuit() error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextStep() error {
	t.mu.Lock()
	t.running = false
	t.eng.Step()
	t.mu.Unlock()
	t.refresh()
	return nil
}

func (t *ConsoleUI) cmdRun() error {
	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
	t.refresh()
	return nil
}

func (t *ConsoleUI) cmdStop() error {
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
	t.refresh()
	return nil
}

func (t *ConsoleUI) cmdReseed() error {
	if t.reseed == nil {
		return nil
	}
	eng, err := t.reseed()
	if err != nil {
		// keep the current board; a bad reseed must not kill the session
		t.logger.Warn("reseed failed", "error", err)
		return nil
	}
	t.mu.Lock()
	t.eng = eng
	t.running = false
	t.mu.Unlock()
	t.refresh()
	return nil
}

// snapshot reads everything the views need under the lock
func (t *ConsoleUI) snapshot() (field string, status []string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	mode := aurora.Colorize("waiting", aurora.BlueFg).String()
	if t.running {
		mode = aurora.Colorize("running", aurora.CyanFg).String()
	}
	status = []string{
		renderProp("Step", "%v", t.eng.Generation()),
		renderProp("Live Cells", "%v", t.eng.Population()),
		renderProp("Dimension", "%v x %v", t.eng.Rows(), t.eng.Cols()),
		renderProp("Interval", "%v", t.interval),
		renderProp("Mode", "%v", mode),
	}
	return t.eng.Render(), status
}

// refresh redraws the views from the UI goroutine
func (t *ConsoleUI) refresh() {
	t.mu.Lock()
	g := t.g
	t.mu.Unlock()
	if g == nil {
		return
	}
	g.Update(func(g *gocui.Gui) error {
		t.draw(g)
		return nil
	})
}

func (t *ConsoleUI) draw(g *gocui.Gui) {
	field, status := t.snapshot()
	if v, err := g.View(viewField); err == nil {
		v.Clear()
		_, _ = fmt.Fprint(v, field)
	}
	if v, err := g.View(viewStatus); err == nil {
		v.Clear()
		for _, line := range status {
			_, _ = fmt.Fprintln(v, line)
		}
	}
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if v, err := g.SetView(viewStatus, 0, 0, leftColumnWidth, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}
	if v, err := g.SetView(viewField, leftColumnWidth+1, 0, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Life"
		v.Frame = true
	}
	if v, err := g.SetView(viewHelp, -1, maxY-3, maxX, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, t.helpLine())
	}

	t.draw(g)
	return nil
}

func (t *ConsoleUI) helpLine() string {
	var b bytes.Buffer
	b.WriteString("KEYBINDINGS: ")
	for i, k := range t.keys {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

func renderProp(name string, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueFormat, values...)
}
