package svg2ico

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/optools/svg2ico/utils"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// Ops holds the command line related options of a conversion.
type Ops struct {
	Src, Dst string
	// Stderr receives the progress messages. It defaults to os.Stderr.
	Stderr io.Writer
}

// Execute runs the conversion from the command line.
// The progress indicator is only shown when the messages are sent to a terminal.
// The Converter is left as it was found once Execute returns.
func (c *Converter) Execute(op *Ops) error {
	stderr := op.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	interactive := isTerminal(stderr)

	if _, err := os.Stat(op.Src); err != nil {
		return &LoadError{Path: op.Src, Err: errors.Wrap(err, "SVG file not found")}
	}

	logger, created := c.Logger, c.created
	defer func() {
		c.Logger, c.created = logger, created
	}()

	now := time.Now()

	var spinner *utils.Spinner
	if interactive {
		msg := fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ SVG2ICO", utils.StatusMessage),
			utils.DecorateText("⇢ rendering icon sizes...", utils.DefaultMessage),
		)
		spinner = utils.NewSpinner(stderr, msg, time.Millisecond*80)
		c.Logger = spinner
	} else if c.Logger == nil {
		c.Logger = log.New(stderr, "", 0)
	}

	var written atomic.Bool
	c.created = func(path string) {
		written.Store(true)
		if created != nil {
			created(path)
		}
	}

	// Capture CTRL-C signal, restore the cursor visibility and remove the incomplete icon file.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})
	defer func() {
		signal.Stop(signalChan)
		close(done)
	}()
	go func() {
		select {
		case <-done:
			return
		case <-signalChan:
		}
		if spinner != nil {
			spinner.RestoreCursor()
		}
		removeIncomplete(op.Dst, &written)
		os.Exit(1)
	}()

	if spinner != nil {
		spinner.Start()
	}
	_, err := c.Convert(op.Src, op.Dst)
	if spinner != nil {
		if err != nil {
			spinner.StopMsg = fmt.Sprintf("%s %s\n",
				utils.DecorateText("⚡ SVG2ICO", utils.StatusMessage),
				utils.DecorateText("converting the icon failed ✘", utils.ErrorMessage),
			)
		} else {
			spinner.StopMsg = fmt.Sprintf("%s %s\n",
				utils.DecorateText("⚡ SVG2ICO", utils.StatusMessage),
				utils.DecorateText("the icon has been created successfully ✔", utils.SuccessMessage),
			)
		}
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "\nThe icon has been saved as: %s\n", utils.DecorateText(filepath.Base(op.Dst), utils.SuccessMessage))
	fmt.Fprintf(stderr, "Execution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))

	return nil
}

// removeIncomplete removes the icon file only if the current run has created it,
// so an interrupted conversion never deletes the output of a previous run.
func removeIncomplete(path string, written *atomic.Bool) bool {
	if !written.Load() {
		return false
	}
	return os.Remove(path) == nil
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
