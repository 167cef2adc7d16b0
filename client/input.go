package client

import (
	"math"

	"blockfall/tetris"

	"github.com/eiannone/keyboard"
)

// swipeThreshold is the shortest swipe taken as a move. Anything shorter is
// most likely a tap.
const swipeThreshold = 50.0

// keyAction maps a key press to the action it triggers while playing.
func keyAction(e keyboard.KeyEvent) (tetris.Action, bool) {
	switch {
	case e.Key == keyboard.KeyArrowLeft || e.Rune == 'a':
		return tetris.MoveLeft, true
	case e.Key == keyboard.KeyArrowRight || e.Rune == 'd':
		return tetris.MoveRight, true
	case e.Key == keyboard.KeyArrowDown || e.Rune == 's':
		return tetris.SoftDrop, true
	case e.Key == keyboard.KeyArrowUp || e.Rune == 'w':
		return tetris.Rotate, true
	case e.Key == keyboard.KeySpace || e.Rune == 'p':
		return tetris.TogglePause, true
	case e.Rune == 'm':
		return tetris.ToggleMusic, true
	}
	return "", false
}

// Swipe maps a swipe gesture of dx, dy to an action. The longer axis wins:
//
//	dx > 0 right	dx < 0 left
//	dy > 0 down		dy < 0 rotate
//
// Swipes shorter than swipeThreshold on both axes are ignored.
func Swipe(dx, dy float64) (tetris.Action, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)
	if ax < swipeThreshold && ay < swipeThreshold {
		return "", false
	}
	if ax > ay {
		if dx > 0 {
			return tetris.MoveRight, true
		}
		return tetris.MoveLeft, true
	}
	if dy > 0 {
		return tetris.SoftDrop, true
	}
	return tetris.Rotate, true
}
