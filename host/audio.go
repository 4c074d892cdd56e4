package host

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"

	"github.com/xyloflake/svc16/vm"
)

const sampleRate = 44100

// The audio request window: the last scanline of screen memory (all 256
// pixels at y=255, addresses 0xFF00-0xFFFF), reinterpreted by convention
// as 256 signed PCM16 samples plus a generation counter in its final
// word. This is a host-invented convention, not something original_source
// defines (engine.rs's perform_sync has no audio parameter at all; main.rs's
// call site doesn't match its own engine's signature). It knowingly
// collides with a guest that paints a full 256x256 frame: such a guest's
// bottom scanline will be reinterpreted as audio instead of displayed.
// Known limitation, not a display bug: a program that wants both graphics
// and sound must reserve this row itself.
const (
	audioWindowStart = 0xFF00
	audioWindowLen   = 256
	audioCounterAddr = 0xFFFF
)

// Audio plays the guest's audio request window through the default
// output device, re-submitting the window only when its generation
// counter has changed since the last frame, the way ui/audio.go's
// callback defaults to silence absent fresh samples.
type Audio struct {
	stream      *portaudio.Stream
	channel     chan float32
	lastCounter vm.Word
	seen        bool
}

// NewAudio opens the default output stream.
func NewAudio() (*Audio, error) {
	a := &Audio{channel: make(chan float32, sampleRate)}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("host: portaudio init: %w", err)
	}
	cb := func(out []float32) {
		for i := range out {
			select {
			case x := <-a.channel:
				out[i] = x
			default:
				out[i] = 0
			}
		}
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, 0, cb)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("host: open audio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("host: start audio stream: %w", err)
	}
	a.stream = stream
	return a, nil
}

// Service inspects the audio request window in a freshly synced screen
// snapshot and, if its counter has advanced, enqueues the 256 PCM16
// samples for playback.
func (a *Audio) Service(screen vm.Memory) {
	counter := screen[audioCounterAddr]
	if a.seen && counter == a.lastCounter {
		return
	}
	a.seen = true
	a.lastCounter = counter
	for i := 0; i < audioWindowLen; i++ {
		sample := int16(screen[audioWindowStart+i])
		select {
		case a.channel <- float32(sample) / 32768:
		default:
		}
	}
}

// Pause stops the output stream without releasing it, mirroring the
// original engine host's audio_sink.pause() on 'p'.
func (a *Audio) Pause() {
	if err := a.stream.Stop(); err != nil {
		glog.Warningf("host: pause audio stream: %v", err)
	}
}

// Resume restarts a paused output stream, mirroring audio_sink.play().
func (a *Audio) Resume() {
	if err := a.stream.Start(); err != nil {
		glog.Warningf("host: resume audio stream: %v", err)
	}
}

// Clear drops any buffered samples and forgets the last-seen generation
// counter, so a restarted guest's first frame is re-submitted even if its
// counter happens to repeat a value the host already played, mirroring
// audio_sink.clear() on 'r'.
func (a *Audio) Clear() {
	for {
		select {
		case <-a.channel:
		default:
			a.seen = false
			return
		}
	}
}

// Close stops playback and releases portaudio.
func (a *Audio) Close() {
	a.stream.Stop()
	a.stream.Close()
	portaudio.Terminate()
}
