package host

import (
	"time"

	"github.com/golang/glog"

	"github.com/xyloflake/svc16/vm"
)

// frameInterval paces the host at 30Hz, matching the original engine's
// FRAMETIME constant.
const frameInterval = time.Second / 30

// Options configures a Run invocation; it is the Go-native shape of the
// original engine's CLI flags (see SPEC_FULL §6).
type Options struct {
	Scaling    int
	MaxIPF     int
	Cursor     bool
	Fullscreen bool
	Verbose    bool
}

// Run drives a fresh VM constructed from image in its window, until the
// window is closed, Escape is pressed, or the guest faults. image is kept
// around for the lifetime of Run as the "cached initial image" the
// original engine host reconstructs from on 'r': `r` rebuilds the VM from
// it exactly as main.rs's `engine = Engine::new(initial_state.clone())`
// did, and `p` toggles a host-level pause that freezes stepping without
// touching sync/present/input servicing. Each unpaused frame steps the
// guest until it requests a sync or the frame's instruction budget runs
// out, then services that sync: sampling input, presenting the resulting
// screen, and feeding any audio request — the same per-frame shape as the
// original engine's event_loop.run.
func Run(image []vm.Word, opts Options) error {
	win, err := NewWindow(opts.Scaling, opts.Cursor, opts.Fullscreen)
	if err != nil {
		return err
	}
	defer win.Close()

	audio, err := NewAudio()
	if err != nil {
		return err
	}
	defer audio.Close()

	machine := vm.New(image)
	paused := false

	for !win.ShouldClose() {
		start := time.Now()

		quit, togglePause, restart := win.PollControls()
		if quit {
			break
		}
		if togglePause {
			paused = !paused
			if paused {
				win.SetTitle("SVC16 (paused)")
				audio.Pause()
			} else {
				win.SetTitle("SVC16")
				audio.Resume()
			}
		}
		if restart {
			machine = vm.New(image)
			audio.Clear()
			paused = false
			win.SetTitle("SVC16")
		}

		ipf := 0
		if !paused {
			for !machine.WantsSync() && ipf < opts.MaxIPF {
				if err := machine.Step(); err != nil {
					return err
				}
				ipf++
			}
		}

		pos, key := win.Sample()
		screen := machine.PerformSync(pos, key)
		audio.Service(screen)
		win.Present(screen)

		if opts.Verbose {
			glog.Infof("instructions=%d frametime=%s paused=%v", ipf, time.Since(start), paused)
		}

		if elapsed := time.Since(start); elapsed < frameInterval {
			time.Sleep(frameInterval - elapsed)
		}
	}
	return nil
}
