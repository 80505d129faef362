// Package display implements the external graphics/input collaborator
// named in spec §2's Non-goals list for the core itself: it turns a
// Driver's framebuffer snapshot into an ebiten-drawable image and turns key
// events into the input-port bit writes described in spec §6.
package display

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"gone8080/io8080"
	"gone8080/timing"
)

const (
	screenWidth  = 256
	screenHeight = 224
)

// keyBinding maps one ebiten key to an input port and bit, per §6's
// input-adapter contract.
type keyBinding struct {
	key  ebiten.Key
	port byte
	bit  byte
}

var bindings = []keyBinding{
	{ebiten.KeyC, 1, io8080.Port1Coin},
	{ebiten.Key2, 1, io8080.Port1P2Start},
	{ebiten.Key1, 1, io8080.Port1P1Start},
	{ebiten.KeySpace, 1, io8080.Port1P1Fire},
	{ebiten.KeyLeft, 1, io8080.Port1P1Left},
	{ebiten.KeyRight, 1, io8080.Port1P1Right},
	{ebiten.KeyA, 2, io8080.Port2P2Fire},
	{ebiten.KeyLeftBracket, 2, io8080.Port2P2Left},
	{ebiten.KeyRightBracket, 2, io8080.Port2P2Right},
}

// Game adapts a timing.Driver to ebiten's Game interface: Thread B of §5.
// It never touches the driver's state directly except through Lock/Unlock
// protected accessors.
type Game struct {
	driver *timing.Driver
	frame  *image.RGBA
}

// NewGame wires driver into an ebiten-ready Game.
func NewGame(driver *timing.Driver) *Game {
	return &Game{
		driver: driver,
		frame:  image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight)),
	}
}

// Update applies key transitions to the input ports and asks the driver to
// exit when Escape is pressed. It always returns nil: the ebiten loop does
// not stop when the core exits.
func (g *Game) Update() error {
	for _, b := range bindings {
		if inpututil.IsKeyJustPressed(b.key) {
			g.driver.SetInputBit(b.port, b.bit)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			g.driver.ClearInputBit(b.port, b.bit)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.driver.RequestExit()
	}
	return nil
}

const bytesPerColumn = screenHeight / 8 // 28

// renderFrame expands the 7,168-byte 1bpp framebuffer snapshot into g.frame,
// per §6's framebuffer contract: byte x*28+g holds bits for column x, rows
// g*8..g*8+7, bit-first (bit 0 is the topmost of the 8). It has no ebiten
// dependency, so it can be exercised without a running graphics context.
func (g *Game) renderFrame() {
	fb := g.driver.Framebuffer()
	on := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	off := color.RGBA{A: 0xFF}
	for x := 0; x < screenWidth; x++ {
		for group := 0; group < bytesPerColumn; group++ {
			b := fb[x*bytesPerColumn+group]
			for bit := 0; bit < 8; bit++ {
				y := group*8 + bit
				px := off
				if b&(1<<uint(bit)) != 0 {
					px = on
				}
				g.frame.Set(x, y, px)
			}
		}
	}
}

// Draw renders the current framebuffer snapshot and blits it to screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderFrame()
	screen.WritePixels(g.frame.Pix)
}

// Layout fixes the logical screen size to the Space Invaders framebuffer's
// native 256x224 resolution.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
