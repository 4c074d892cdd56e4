package host

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/xyloflake/svc16/vm"
)

// clamp restricts v to [0, max-1].
func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v >= max {
		return max - 1
	}
	return v
}

// Sample reads the window's current keyboard and mouse state and
// produces the pos_code/key_code pair the guest latches at its next
// SYNC, using the same bit layout as the original engine's
// get_input_code: pos_code is the cursor's guest pixel encoded as
// y*256+x, and key_code is a bitmask of WASD/arrows/space/mouse/n/m.
func (w *Window) Sample() (pos, key vm.Word) {
	cx, cy := w.win.GetCursorPos()
	px := clamp(int(cx)/w.Scaling, Resolution)
	py := clamp(int(cy)/w.Scaling, Resolution)
	pos = vm.Word(py*Resolution + px)

	held := func(k glfw.Key) bool { return w.win.GetKey(k) == glfw.Press }
	mouse := func(b glfw.MouseButton) bool { return w.win.GetMouseButton(b) == glfw.Press }

	var code vm.Word
	if held(glfw.KeySpace) || mouse(glfw.MouseButtonLeft) {
		code |= 1
	}
	if held(glfw.KeyB) || mouse(glfw.MouseButtonRight) {
		code |= 2
	}
	if held(glfw.KeyW) || held(glfw.KeyUp) {
		code |= 4
	}
	if held(glfw.KeyS) || held(glfw.KeyDown) {
		code |= 8
	}
	if held(glfw.KeyA) || held(glfw.KeyLeft) {
		code |= 16
	}
	if held(glfw.KeyD) || held(glfw.KeyRight) {
		code |= 32
	}
	if held(glfw.KeyN) {
		code |= 64
	}
	if held(glfw.KeyM) {
		code |= 128
	}
	return pos, code
}
