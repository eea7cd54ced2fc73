// This file is part of Retroreplay.
//
// Retroreplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroreplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroreplay.  If not, see <https://www.gnu.org/licenses/>.

package toy

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/jetsetilly/retroreplay/curated"
)

// System is the name of the emulated system. It is the suffix of every game
// name that uses this core.
const System = "Toy"

// Dimensions of the screen.
const (
	Width  = 64
	Height = 48
)

// RAMSize is the number of bytes of RAM.
const RAMSize = 64

// MaxPlayers is the maximum number of players supported.
const MaxPlayers = 2

// AudioRate is the sample rate of the generated audio.
const AudioRate = 11040.0

// SamplesPerFrame is the number of stereo samples generated for each frame.
const SamplesPerFrame = 184

var romMagic = []byte("TOYROM")

const romVersion = 0x01

var stateMagic = []byte("TOYSTATE")

// buttons in the order used by SetButtons()
var buttons = []string{"B", "A", "SELECT", "START", "UP", "DOWN", "LEFT", "RIGHT"}

const (
	btnB = iota
	btnA
	btnSelect
	btnStart
	btnUp
	btnDown
	btnLeft
	btnRight
)

// RAM addresses.
const (
	addrFrame    = 0
	addrPlayers  = 2
	addrHazards  = 8
	addrScore    = 16
	addrLives    = 18
	addrLFSR     = 19
	addrTone     = 21
	addrLevel    = 22
	addrGameOver = 23
	addrPhase    = 24
	addrActive   = 26
	addrSeed     = 27
	addrStart    = 29
)

const maxHazards = 4

// Core is an instance of the Toy system.
type Core struct {
	title   string
	loaded  bool
	ram     [RAMSize]byte
	pressed [MaxPlayers][]bool

	frame *image.RGBA
	audio []int16
}

// NewCore is the preferred method of initialisation for the Core type.
func NewCore() *Core {
	c := &Core{
		frame: image.NewRGBA(image.Rect(0, 0, Width, Height)),
		audio: make([]int16, SamplesPerFrame*2),
	}
	for p := range c.pressed {
		c.pressed[p] = make([]bool, len(buttons))
	}
	return c
}

func (c *Core) String() string {
	return fmt.Sprintf("%s: %s", System, c.title)
}

// Buttons returns the names of the buttons of one player.
func (c *Core) Buttons() []string {
	b := make([]string, len(buttons))
	copy(b, buttons)
	return b
}

// Players returns the maximum number of players.
func (c *Core) Players() int {
	return MaxPlayers
}

// Load the ROM data and put the system into its power-on state.
func (c *Core) Load(rom []byte) error {
	hdr := len(romMagic) + 5
	if len(rom) < hdr || !bytes.Equal(rom[:len(romMagic)], romMagic) {
		return curated.Errorf("toy: not a toy rom")
	}
	if rom[len(romMagic)] != romVersion {
		return curated.Errorf("toy: unsupported rom version (%d)", rom[len(romMagic)])
	}

	seedHi := rom[len(romMagic)+1]
	seedLo := rom[len(romMagic)+2]
	lives := rom[len(romMagic)+3]
	hazards := rom[len(romMagic)+4]

	if lives == 0 {
		return curated.Errorf("toy: rom must start with at least one life")
	}
	if hazards == 0 || hazards > maxHazards {
		return curated.Errorf("toy: rom must have between 1 and %d hazards", maxHazards)
	}

	c.title = string(rom[hdr:])
	c.ram = [RAMSize]byte{}
	c.ram[addrSeed] = seedHi
	c.ram[addrSeed+1] = seedLo
	c.ram[addrStart] = lives
	c.ram[addrActive] = hazards
	c.newGame()
	c.loaded = true
	c.render()

	return nil
}

// newGame resets the RAM to the start of a game, keeping the frame counter
// and the values found in the ROM.
func (c *Core) newGame() {
	seed := uint16(c.ram[addrSeed])<<8 | uint16(c.ram[addrSeed+1])
	if seed == 0 {
		seed = 0xace1
	}
	c.setLFSR(seed)

	c.ram[addrPlayers] = Width / 3
	c.ram[addrPlayers+1] = Height - 4
	c.ram[addrPlayers+2] = Width * 2 / 3
	c.ram[addrPlayers+3] = Height - 4

	for i := range maxHazards {
		c.ram[addrHazards+i*2] = byte(c.random() % Width)
		c.ram[addrHazards+i*2+1] = byte(i * Height / maxHazards / 2)
	}

	c.ram[addrScore] = 0
	c.ram[addrScore+1] = 0
	c.ram[addrLives] = c.ram[addrStart]
	c.ram[addrTone] = 0
	c.ram[addrLevel] = 0
	c.ram[addrGameOver] = 0
}

func (c *Core) lfsr() uint16 {
	return uint16(c.ram[addrLFSR]) | uint16(c.ram[addrLFSR+1])<<8
}

func (c *Core) setLFSR(v uint16) {
	c.ram[addrLFSR] = byte(v)
	c.ram[addrLFSR+1] = byte(v >> 8)
}

// random advances the galois LFSR and returns the new value.
func (c *Core) random() uint16 {
	v := c.lfsr()
	lsb := v & 1
	v >>= 1
	if lsb == 1 {
		v ^= 0xb400
	}
	c.setLFSR(v)
	return v
}

// State returns a copy of the current state.
func (c *Core) State() []byte {
	s := make([]byte, 0, len(stateMagic)+RAMSize)
	s = append(s, stateMagic...)
	s = append(s, c.ram[:]...)
	return s
}

// SetState restores a state previously returned by State().
func (c *Core) SetState(state []byte) error {
	if !c.loaded {
		return curated.Errorf("toy: no rom loaded")
	}
	if len(state) != len(stateMagic)+RAMSize || !bytes.Equal(state[:len(stateMagic)], stateMagic) {
		return curated.Errorf("toy: not a toy state")
	}
	copy(c.ram[:], state[len(stateMagic):])
	c.render()
	return nil
}

// SetButtons sets the buttons for the player to be used by the next call to
// Run(). The pressed slice is in the order returned by Buttons(). Missing
// entries are treated as released.
func (c *Core) SetButtons(player int, pressed []bool) {
	if player < 0 || player >= MaxPlayers {
		return
	}
	for i := range c.pressed[player] {
		c.pressed[player][i] = i < len(pressed) && pressed[i]
	}
}

// Memory returns the RAM. The slice should not be modified.
func (c *Core) Memory() []byte {
	return c.ram[:]
}

// Frame returns the most recent frame. The image is reused by the next call
// to Run().
func (c *Core) Frame() *image.RGBA {
	return c.frame
}

// Audio returns the interleaved stereo samples generated by the most recent
// call to Run(). The slice is reused by the next call to Run().
func (c *Core) Audio() []int16 {
	return c.audio
}

// AudioRate returns the sample rate of the audio returned by Audio().
func (c *Core) AudioRate() float64 {
	return AudioRate
}

// Run the system for one frame.
func (c *Core) Run() {
	if !c.loaded {
		return
	}

	frame := uint16(c.ram[addrFrame]) | uint16(c.ram[addrFrame+1])<<8
	frame++
	c.ram[addrFrame] = byte(frame)
	c.ram[addrFrame+1] = byte(frame >> 8)

	if c.ram[addrGameOver] != 0 {
		if c.pressed[0][btnStart] {
			c.newGame()
		}
	} else {
		c.movePlayers()
		c.moveHazards()
	}

	c.generateAudio()
	c.render()
}

func (c *Core) movePlayers() {
	for p := range MaxPlayers {
		x := int(c.ram[addrPlayers+p*2])
		y := int(c.ram[addrPlayers+p*2+1])

		speed := 1
		if c.pressed[p][btnA] {
			speed = 2
		}
		if c.pressed[p][btnUp] {
			y -= speed
		}
		if c.pressed[p][btnDown] {
			y += speed
		}
		if c.pressed[p][btnLeft] {
			x -= speed
		}
		if c.pressed[p][btnRight] {
			x += speed
		}

		c.ram[addrPlayers+p*2] = byte(min(max(x, 0), Width-1))
		c.ram[addrPlayers+p*2+1] = byte(min(max(y, 0), Height-1))
	}
}

func (c *Core) moveHazards() {
	if c.ram[addrTone] > 0 {
		c.ram[addrTone]--
	}

	speed := 1 + int(c.ram[addrLevel])/2

	for i := range int(c.ram[addrActive]) {
		hx := int(c.ram[addrHazards+i*2])
		hy := int(c.ram[addrHazards+i*2+1]) + speed

		hit := false
		for p := range MaxPlayers {
			px := int(c.ram[addrPlayers+p*2])
			py := int(c.ram[addrPlayers+p*2+1])
			if abs(px-hx) <= 1 && abs(py-hy) <= 1 {
				hit = true
			}
		}

		if hit {
			c.ram[addrTone] = 0x30
			if c.ram[addrLives] > 0 {
				c.ram[addrLives]--
			}
			if c.ram[addrLives] == 0 {
				c.ram[addrGameOver] = 1
			}
			hy = Height
		}

		if hy >= Height {
			if !hit {
				c.score()
			}
			hx = int(c.random() % Width)
			hy = 0
		}

		c.ram[addrHazards+i*2] = byte(hx)
		c.ram[addrHazards+i*2+1] = byte(hy)
	}
}

func (c *Core) score() {
	s := uint16(c.ram[addrScore])<<8 | uint16(c.ram[addrScore+1])
	s++
	c.ram[addrScore] = byte(s >> 8)
	c.ram[addrScore+1] = byte(s)
	c.ram[addrLevel] = byte(min(s/20, 9))
	if c.ram[addrTone] == 0 {
		c.ram[addrTone] = 0x08
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// square wave. the pitch follows player one's horizontal position and the
// volume follows the tone register
func (c *Core) generateAudio() {
	phase := uint16(c.ram[addrPhase]) | uint16(c.ram[addrPhase+1])<<8
	period := uint16(16 + int(c.ram[addrPlayers])/2)
	volume := int16(c.ram[addrTone]) * 256

	for i := range SamplesPerFrame {
		phase = (phase + 1) % period
		v := volume
		if phase >= period/2 {
			v = -v
		}
		c.audio[i*2] = v
		c.audio[i*2+1] = v
	}

	c.ram[addrPhase] = byte(phase)
	c.ram[addrPhase+1] = byte(phase >> 8)
}

var (
	colBackground = color.RGBA{R: 0x10, G: 0x10, B: 0x20, A: 0xff}
	colPlayer     = [MaxPlayers]color.RGBA{
		{R: 0x40, G: 0xe0, B: 0x40, A: 0xff},
		{R: 0x40, G: 0x80, B: 0xf0, A: 0xff},
	}
	colHazard = color.RGBA{R: 0xf0, G: 0x40, B: 0x30, A: 0xff}
	colLives  = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	colOver   = color.RGBA{R: 0x80, G: 0x10, B: 0x10, A: 0xff}
)

func (c *Core) plot(x, y int, col color.RGBA) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	c.frame.SetRGBA(x, y, col)
}

func (c *Core) render() {
	bg := colBackground
	if c.ram[addrGameOver] != 0 {
		bg = colOver
	}
	for y := range Height {
		for x := range Width {
			c.frame.SetRGBA(x, y, bg)
		}
	}

	for i := range int(c.ram[addrLives]) {
		c.plot(1+i*3, 1, colLives)
		c.plot(2+i*3, 1, colLives)
	}

	for i := range int(c.ram[addrActive]) {
		hx := int(c.ram[addrHazards+i*2])
		hy := int(c.ram[addrHazards+i*2+1])
		c.plot(hx, hy, colHazard)
		c.plot(hx+1, hy, colHazard)
	}

	for p := range MaxPlayers {
		px := int(c.ram[addrPlayers+p*2])
		py := int(c.ram[addrPlayers+p*2+1])
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				c.plot(px+dx, py+dy, colPlayer[p])
			}
		}
	}
}
