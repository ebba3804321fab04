package sfx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/gopxl/beep"
)

// ErrNoPlayer is returned when no PCM player program is installed.
var ErrNoPlayer = errors.New("sfx: no audio player found")

// Backend is an external program that plays raw PCM from stdin.
type Backend struct {
	Name string
	Path string
	Args []string
}

// candidates lists players by preference with their raw-PCM arguments.
func candidates(rate beep.SampleRate) []Backend {
	r := strconv.Itoa(int(rate))
	return []Backend{
		{Name: "pacat", Args: []string{"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--latency-msec=50", "--playback"}},
		{Name: "pw-cat", Args: []string{"--playback", "--format=s16", "--rate=" + r, "--channels=2", "-"}},
		{Name: "aplay", Args: []string{"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q"}},
		{Name: "play", Args: []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q"}},
	}
}

// Detect finds the first installed player.
func Detect(rate beep.SampleRate) (Backend, error) {
	return detect(rate, exec.LookPath)
}

func detect(rate beep.SampleRate, lookPath func(string) (string, error)) (Backend, error) {
	for _, b := range candidates(rate) {
		if path, err := lookPath(b.Name); err == nil {
			b.Path = path
			return b, nil
		}
	}
	return Backend{}, ErrNoPlayer
}

// Play runs the backend and pipes the mixer into it until ctx ends.
// The returned channel yields the pipe's result once.
func Play(ctx context.Context, b Backend, m *Mixer) (<-chan error, error) {
	cmd := exec.CommandContext(ctx, b.Path, b.Args...) //#nosec G204 -- fixed argument lists
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("sfx: stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("sfx: start %s: %w", b.Name, err)
	}

	done := make(chan error, 1)
	go func() {
		err := m.Pipe(ctx, stdin, 20*time.Millisecond)
		_ = stdin.Close()
		if werr := cmd.Wait(); err == nil && werr != nil && ctx.Err() == nil {
			err = fmt.Errorf("sfx: %s exited: %w", b.Name, werr)
		}
		done <- err
	}()
	return done, nil
}
