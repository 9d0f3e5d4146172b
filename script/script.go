// Package script implements a line based language describing pointer and
// brush events, used to replay painting sessions without a user interface.
//
// Each line holds one command followed by its arguments. Blank lines and
// everything after a # are ignored:
//
//	# a short red stroke
//	hue 0
//	sv 1 1
//	confirm
//	down 360 360
//	move 400 380
//	up
package script

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Command is a parsed script line.
type Command struct {
	Name string
	Nums []float64
	Text string
	Line int
}

type signature struct {
	nums int
	text bool
}

// commands lists every known command with the arguments it takes.
var commands = map[string]signature{
	"down":      {nums: 2},
	"move":      {nums: 2},
	"up":        {},
	"cancel":    {},
	"undo":      {},
	"clear":     {},
	"confirm":   {},
	"brush":     {text: true},
	"load":      {text: true},
	"size":      {nums: 1},
	"opacity":   {nums: 1},
	"smoothing": {nums: 1},
	"spacing":   {nums: 1},
	"hue":       {nums: 1},
	"sv":        {nums: 2},
}

// SyntaxError reports a malformed script line.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parse reads a whole script.
func Parse(r io.Reader) ([]Command, error) {
	var cmds []Command

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, err := parseCommand(fields, n)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("could not read the script: %w", err)
	}
	return cmds, nil
}

func parseCommand(fields []string, line int) (Command, error) {
	name := strings.ToLower(fields[0])
	args := fields[1:]

	sig, ok := commands[name]
	if !ok {
		return Command{}, &SyntaxError{line, fmt.Sprintf("unknown command %q", fields[0])}
	}
	cmd := Command{Name: name, Line: line}

	if sig.text {
		if len(args) == 0 {
			return Command{}, &SyntaxError{line, fmt.Sprintf("%s expects an argument", name)}
		}
		// Paths may contain spaces.
		cmd.Text = strings.Join(args, " ")
		return cmd, nil
	}
	if len(args) != sig.nums {
		return Command{}, &SyntaxError{line, fmt.Sprintf("%s expects %d arguments, got %d", name, sig.nums, len(args))}
	}
	for _, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return Command{}, &SyntaxError{line, fmt.Sprintf("invalid number %q", a)}
		}
		cmd.Nums = append(cmd.Nums, v)
	}
	return cmd, nil
}
