package view

import (
	"bytes"
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/lifegrid/model"
	"github.com/sheikhrachel/lifegrid/runner"
)

// clearSequence moves the cursor home and clears the screen
const clearSequence = "\033[H\033[2J"

// Terminal writes frames to a terminal, one full screen per frame
type Terminal struct {
	Out    io.Writer
	Clear  bool
	Color  bool
	Status bool

	liveGlyph string
}

func NewTerminal(out io.Writer, clearScreen, color, status bool) *Terminal {
	t := &Terminal{Out: out, Clear: clearScreen, Color: color, Status: status, liveGlyph: model.LiveGlyph}
	if color {
		t.liveGlyph = aurora.Green("+").Bold().String() + " "
	}
	return t
}

// Show implements runner.Display
func (t *Terminal) Show(frame runner.Frame) error {
	var b bytes.Buffer
	if t.Clear {
		b.WriteString(clearSequence)
	}
	if t.Status {
		b.WriteString(StatusLine(frame))
		b.WriteByte('\n')
	}
	if t.Color && frame.Grid != nil {
		b.WriteString(model.RenderGrid(frame.Grid, t.liveGlyph, model.DeadGlyph))
	} else {
		b.WriteString(frame.Text)
	}

	_, err := t.Out.Write(b.Bytes())
	return errors.Wrap(err, "[Terminal.Show] failed to write frame")
}

// StatusLine summarizes a frame on one line
func StatusLine(frame runner.Frame) string {
	line := fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%%", frame.Generation, frame.Population, frame.Density())
	if frame.Period > 0 {
		line += fmt.Sprintf(" | Period: %d", frame.Period)
	}
	return line
}
