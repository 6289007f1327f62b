package display

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-phong-raytracer/pkg/camera"
)

// InputFromKeys maps held keys to orbit input: arrows orbit, +/= and the keypad plus zoom in,
// - and the keypad minus zoom out.
func InputFromKeys(pressed func(ebiten.Key) bool) camera.Input {
	held := func(keys ...ebiten.Key) bool {
		for _, key := range keys {
			if pressed(key) {
				return true
			}
		}
		return false
	}

	return camera.Input{
		Left:    held(ebiten.KeyArrowLeft),
		Right:   held(ebiten.KeyArrowRight),
		Up:      held(ebiten.KeyArrowUp),
		Down:    held(ebiten.KeyArrowDown),
		ZoomIn:  held(ebiten.KeyEqual, ebiten.KeyNumpadAdd),
		ZoomOut: held(ebiten.KeyMinus, ebiten.KeyNumpadSubtract),
	}
}
