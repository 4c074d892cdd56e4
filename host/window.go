// Package host implements the reference host: a GLFW+OpenGL window, audio
// playback, and the frame loop that steps the guest and services its sync
// barrier. None of this is part of the SVC16 machine itself — it is one
// possible driver for package vm, following the shape of the original
// engine's own reference host.
package host

import (
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/xyloflake/svc16/vm"
)

// Resolution is the guest screen's fixed width and height, in pixels.
const Resolution = 256

// Shaders for a single full-viewport textured quad.
const (
	vertexShader = `
  #version 330

  attribute vec3 position;
  attribute vec2 uv;
  varying vec2 vuv;
  void main(void){
    gl_Position = vec4(position, 1.0);
    vuv = uv;
  }
  ` + "\x00"

	fragmentShader = `
  #version 330

  varying vec2 vuv;
  uniform sampler2D texture;
  void main(void){
    gl_FragColor = texture2D(texture, vuv);
  }
  ` + "\x00"
)

// compileShader compiles a single shader stage.
func compileShader(code string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	ccode := gl.Str(code)
	gl.ShaderSource(shader, 1, &ccode, nil)
	gl.CompileShader(shader)
	var result int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetShaderInfoLog(shader, length, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to compile a shader: %v\n %v", code, log)
	}
	return shader, nil
}

// newProgram links the fixed vertex/fragment pair into a GL program.
func newProgram() (uint32, error) {
	vs, err := compileShader(vertexShader, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragmentShader, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	var result int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &result)
	if result == gl.FALSE {
		var length int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &length)
		log := strings.Repeat("\x00", int(length+1))
		gl.GetProgramInfoLog(program, length, nil, gl.Str(log))
		return 0, fmt.Errorf("failed to link a program: %v", log)
	}
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)
	return program, nil
}

var vertexPosition = []float32{
	1, 1,
	-1, 1,
	-1, -1,
	1, -1,
}
var vertexUV = []float32{
	1, 0,
	0, 0,
	0, 1,
	1, 1,
}

// Window owns the GLFW window, its GL program, and the scaling factor
// applied between guest pixels and window pixels.
type Window struct {
	win     *glfw.Window
	program uint32
	Scaling int

	// previous key states, for edge-detecting the control keys (a held
	// key must trigger its action once, not every frame it stays down).
	prevEscape, prevPause, prevRestart bool
}

// NewWindow creates and shows a window scaling the fixed Resolution x
// Resolution guest screen by scaling. cursor and fullscreen mirror the
// CLI flags of the same name.
func NewWindow(scaling int, cursor, fullscreen bool) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("host: glfw init: %w", err)
	}
	size := Resolution * scaling
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	win, err := glfw.CreateWindow(size, size, "SVC16", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("host: create window: %w", err)
	}
	win.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("host: gl init: %w", err)
	}
	program, err := newProgram()
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("host: shader program: %w", err)
	}
	gl.UseProgram(program)
	if !cursor {
		win.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	}
	if fullscreen {
		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		win.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
	}
	return &Window{win: win, program: program, Scaling: scaling}, nil
}

// ShouldClose reports whether the user has asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.win.ShouldClose()
}

// SetTitle changes the window's title bar text, used to show the paused
// state the way the original engine's host did.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}

// PollControls pumps the window's event queue and reports the control
// keys pressed since the last call, mirroring the original engine host's
// key_pressed-edge checks: Escape requests a quit, 'p' toggles pause, 'r'
// requests a restart from the cached initial program image. Each is
// edge-detected so holding a key down triggers its action only once.
func (w *Window) PollControls() (quit, togglePause, restart bool) {
	glfw.PollEvents()

	escape := w.win.GetKey(glfw.KeyEscape) == glfw.Press
	pause := w.win.GetKey(glfw.KeyP) == glfw.Press
	rst := w.win.GetKey(glfw.KeyR) == glfw.Press

	quit = escape && !w.prevEscape
	togglePause = pause && !w.prevPause
	restart = rst && !w.prevRestart

	w.prevEscape, w.prevPause, w.prevRestart = escape, pause, rst
	return quit, togglePause, restart
}

// Present uploads one frame of guest screen memory as a texture and
// swaps it to the window, replicating updateTexture's per-frame texture
// upload.
func (w *Window) Present(screen vm.Memory) {
	img := image.NewRGBA(image.Rect(0, 0, Resolution, Resolution))
	for addr, word := range screen {
		c := vm.RGB565ToRGBA(word)
		img.SetRGBA(addr%Resolution, addr/Resolution, c)
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, Resolution, Resolution,
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	positionLocation := uint32(gl.GetAttribLocation(w.program, gl.Str("position\x00")))
	uvLocation := uint32(gl.GetAttribLocation(w.program, gl.Str("uv\x00")))
	textureLocation := gl.GetUniformLocation(w.program, gl.Str("texture\x00"))
	gl.EnableVertexAttribArray(positionLocation)
	gl.EnableVertexAttribArray(uvLocation)
	gl.Uniform1i(textureLocation, 0)
	gl.VertexAttribPointer(positionLocation, 2, gl.FLOAT, false, 0, gl.Ptr(vertexPosition))
	gl.VertexAttribPointer(uvLocation, 2, gl.FLOAT, false, 0, gl.Ptr(vertexUV))
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	gl.DeleteTextures(1, &textureID)

	w.win.SwapBuffers()
}

// Close tears down the window and terminates GLFW.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}
