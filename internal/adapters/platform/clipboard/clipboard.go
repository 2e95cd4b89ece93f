// Package clipboard writes PNG images to the system clipboard through the
// wl-copy (Wayland) or xclip (X11) command line tools.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/common/errorz"
	"github.com/Badsnus/qr-studio/pkg/logger/types"
)

type tool struct {
	name string
	args []string
}

// waitDelay caps how long a finished tool may hold its output pipes open.
// xclip forks a child that keeps stderr until it loses the selection.
const waitDelay = 500 * time.Millisecond

var tools = []tool{
	{name: "wl-copy", args: []string{"--type", "image/png"}},
	{name: "xclip", args: []string{"-selection", "clipboard", "-t", "image/png", "-i"}},
}

type Clipboard struct {
	path   string
	args   []string
	logger *types.Logger
}

// New probes PATH for a supported tool. The returned Clipboard reports
// itself unavailable when none is found.
func New(logger *types.Logger) *Clipboard {
	c := &Clipboard{logger: logger}
	for _, t := range tools {
		path, err := exec.LookPath(t.name)
		if err != nil {
			continue
		}
		c.path, c.args = path, t.args
		logger.Debugf("using %s for clipboard", path)
		break
	}
	return c
}

func (c *Clipboard) Available() bool {
	return c.path != ""
}

func (c *Clipboard) WriteImage(ctx context.Context, png []byte) error {
	if !c.Available() {
		return fmt.Errorf("%w: no clipboard tool found", errorz.ErrCapabilityUnavailable)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.path, c.args...)
	cmd.Stdin = bytes.NewReader(png)
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if errors.Is(err, exec.ErrWaitDelay) {
		c.logger.Debugf("%s left its selection owner running", c.path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %s", c.path, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
