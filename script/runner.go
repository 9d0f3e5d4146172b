package script

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/esimov/rondo"
	"github.com/esimov/rondo/utils"
)

// Runner applies commands to a painting session.
type Runner struct {
	Session *rondo.PainterSession
	// Dir resolves relative brush paths. Empty means the working directory.
	Dir string
}

// Run applies cmds to s.
func Run(s *rondo.PainterSession, cmds []Command) error {
	r := &Runner{Session: s}
	return r.Run(cmds)
}

// Run applies the commands in order and stops at the first failing one.
func (r *Runner) Run(cmds []Command) error {
	for _, cmd := range cmds {
		if err := r.apply(cmd); err != nil {
			return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.Name, err)
		}
	}
	return nil
}

func (r *Runner) apply(cmd Command) error {
	s := r.Session

	switch cmd.Name {
	case "down":
		s.OnPointerDown(cmd.Nums[0], cmd.Nums[1])
	case "move":
		s.OnPointerMove(cmd.Nums[0], cmd.Nums[1])
	case "up":
		s.OnPointerUp()
	case "cancel":
		s.Cancel()
	case "undo":
		s.Undo()
	case "clear":
		s.Clear()
	case "confirm":
		s.ConfirmPendingColor()
	case "brush":
		bt, err := rondo.ParseBrushType(cmd.Text)
		if err != nil {
			return err
		}
		s.SetBrushType(bt)
	case "load":
		return r.load(cmd.Text)
	case "size":
		s.SetBrushSize(intArg(cmd.Nums[0]))
	case "opacity":
		s.SetOpacity(intArg(cmd.Nums[0]))
	case "smoothing":
		s.SetSmoothing(cmd.Nums[0])
	case "spacing":
		s.SetSpacingPercent(intArg(cmd.Nums[0]))
	case "hue":
		s.SetHue(cmd.Nums[0])
	case "sv":
		s.SetSaturationValue(cmd.Nums[0], cmd.Nums[1])
	default:
		return errors.New("unsupported command")
	}
	return nil
}

// load reads a brush image from a local path or an http(s) URL.
func (r *Runner) load(src string) error {
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(src)
		if err != nil {
			return err
		}
		defer os.Remove(f.Name())
		defer f.Close()

		return r.Session.LoadCustomBrushReader(f)
	}
	if !filepath.IsAbs(src) && r.Dir != "" {
		src = filepath.Join(r.Dir, src)
	}
	return r.Session.LoadCustomBrushFile(src)
}

// intArg converts a numeric argument to an int, saturating values that do not fit.
func intArg(v float64) int {
	return int(utils.Clamp(math.Round(v), math.MinInt32, math.MaxInt32))
}
