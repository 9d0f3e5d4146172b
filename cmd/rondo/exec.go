package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/esimov/rondo"
	"github.com/esimov/rondo/script"
	"github.com/esimov/rondo/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// scriptExtensions lists the files picked up when the source is a directory.
var scriptExtensions = []string{".rondo", ".txt"}

// Ops describes one invocation of the renderer.
type Ops struct {
	Src, Dst, PipeName string
	// Brush is an optional brush image path or URL loaded into every session.
	Brush   string
	Workers int
	Format  rondo.Format
	Config  rondo.Config

	brushPath string
	spinner   *utils.Spinner
}

// result holds the outcome of rendering one script.
type result struct {
	path string
	err  error
}

// Execute renders the source script, or every script found under the source
// directory, and writes the resulting images.
func (op *Ops) Execute() (err error) {
	op.spinner = utils.NewSpinner(utils.Banner("⇢ replaying strokes..."), time.Millisecond*80, os.Stderr)

	// Capture CTRL-C signal and restore the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		op.spinner.RestoreCursor()
		os.Exit(1)
	}()

	// Remote brushes are downloaded once and shared by every session.
	op.brushPath = op.Brush
	if utils.IsValidUrl(op.Brush) {
		f, err := utils.DownloadImage(op.Brush)
		if err != nil {
			return err
		}
		defer os.Remove(f.Name())
		if err := f.Close(); err != nil {
			return err
		}
		op.brushPath = f.Name()
	}

	var fs os.FileInfo
	if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source script: %w", err)
	}
	if fs.IsDir() && op.Dst == op.PipeName {
		return errors.New("a source directory needs a destination directory, not the standard output")
	}

	now := time.Now()

	op.spinner.Start()
	defer func() {
		if err != nil {
			op.spinner.StopMsg = utils.Banner(utils.DecorateText("✘ rendering failed\n", utils.ErrorMessage))
		} else {
			op.spinner.StopMsg = utils.Banner(utils.DecorateText("✔ canvas rendered\n", utils.SuccessMessage))
		}
		op.spinner.Stop()
		if err == nil {
			fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
		}
	}()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		if err := os.MkdirAll(op.Dst, 0755); err != nil {
			return fmt.Errorf("unable to create the destination directory: %w", err)
		}

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		ch := make(chan result)
		done := make(chan struct{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, scriptExtensions)

		var wg sync.WaitGroup
		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				op.consumer(op.Dst, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		var failed error
		for res := range ch {
			op.printOpStatus(res.path, res.err)
			if res.err != nil {
				failed = res.err
			}
		}
		if err := <-errc; err != nil {
			return err
		}
		if failed != nil {
			return failed
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0:
		if op.Dst != op.PipeName && op.Format == rondo.FormatAuto {
			if _, err := rondo.FormatFromPath(op.Dst); err != nil {
				return err
			}
		}
		err = op.process(op.Src, op.Dst)
		op.printOpStatus(op.Dst, err)
		if err != nil {
			return err
		}

	default:
		return errors.New("the source should be a script file, a directory or a pipe")
	}

	return nil
}

// consumer renders the scripts received on the paths channel.
func (op *Ops) consumer(
	dest string,
	res chan<- result,
	done <-chan struct{},
	paths <-chan string,
) {
	for src := range paths {
		err := op.process(src, op.outputPath(dest, src))

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// outputPath names the image rendered from the script src inside dest.
func (op *Ops) outputPath(dest, src string) string {
	f := op.Format
	if f == rondo.FormatAuto {
		f = rondo.FormatPNG
	}
	base := filepath.Base(src)
	return filepath.Join(dest, strings.TrimSuffix(base, filepath.Ext(base))+f.Ext())
}

// process replays one script into a fresh session and exports the result.
func (op *Ops) process(in, out string) error {
	src, err := op.openScript(in)
	if err != nil {
		return err
	}
	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	cmds, err := script.Parse(src)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	s, err := rondo.NewSession(op.Config)
	if err != nil {
		return err
	}
	if op.brushPath != "" {
		if err := s.LoadCustomBrushFile(op.brushPath); err != nil {
			return err
		}
	}

	runner := &script.Runner{Session: s}
	if in != op.PipeName {
		runner.Dir = filepath.Dir(in)
	}
	if err := runner.Run(cmds); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		f := op.Format
		if f == rondo.FormatAuto {
			f = rondo.FormatPNG
		}
		err = s.Export(os.Stdout, f)
	} else {
		err = s.ExportToFile(out, op.Format)
	}
	return err
}

// openScript opens the source script, which may be the standard input.
func (op *Ops) openScript(in string) (io.Reader, error) {
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, nil
	}
	f, err := os.Open(in)
	if err != nil {
		return nil, fmt.Errorf("unable to open the source script: %w", err)
	}
	return f, nil
}

// printOpStatus displays the outcome of rendering one script.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n",
			utils.DecorateText("\nError rendering "+filepath.Base(fname)+":", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe canvas has been saved as: %s %s\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each script file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan struct{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() || !isValidExtension(filepath.Ext(f.Name()), srcExts) {
				return nil
			}
			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

// isValidExtension checks for the supported extensions.
func isValidExtension(ext string, extensions []string) bool {
	for _, ex := range extensions {
		if strings.EqualFold(ex, ext) {
			return true
		}
	}
	return false
}
