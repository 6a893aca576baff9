package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func press(k Key) RawKeyboardInput   { return RawKeyboardInput{Key: k, State: Pressed} }
func release(k Key) RawKeyboardInput { return RawKeyboardInput{Key: k, State: Released} }

func TestKeyPressedBetweenPressAndRelease(t *testing.T) {
	in := NewInputContext()
	assert.False(t, in.IsKeyPressed(KeyW))

	in.Update(press(KeyW))
	assert.True(t, in.IsKeyPressed(KeyW))
	in.Update(RawKeyboardInput{Key: KeyW, State: Pressed, Repeat: true})
	assert.True(t, in.IsKeyPressed(KeyW))
	assert.False(t, in.IsKeyReleased(KeyW))

	in.Update(release(KeyW))
	assert.False(t, in.IsKeyPressed(KeyW))
	assert.True(t, in.IsKeyReleased(KeyW))
}

func TestLastReleaseWins(t *testing.T) {
	in := NewInputContext()
	in.Update(press(KeyA))
	in.Update(press(KeyD))
	in.Update(release(KeyA))
	in.Update(release(KeyD))

	assert.False(t, in.IsKeyReleased(KeyA))
	assert.True(t, in.IsKeyReleased(KeyD))

	in.ClearReleased()
	assert.False(t, in.IsKeyReleased(KeyD))
}

func TestPressClearsReleaseOfSameKey(t *testing.T) {
	in := NewInputContext()
	in.Update(press(KeySpace))
	in.Update(release(KeySpace))
	in.Update(press(KeySpace))

	assert.True(t, in.IsKeyPressed(KeySpace))
	assert.False(t, in.IsKeyReleased(KeySpace))

	in.Update(release(KeyA))
	in.Update(press(KeySpace))
	assert.True(t, in.IsKeyReleased(KeyA), "pressing another key keeps the slot")
}

func TestMouseState(t *testing.T) {
	in := NewInputContext()
	in.Update(RawCursorMoved{X: 10, Y: 20})
	in.Update(RawCursorMoved{X: 15, Y: 25})
	in.Update(RawMouseInput{Button: MouseButtonLeft, State: Pressed})

	x, y := in.MousePosition()
	assert.Equal(t, 15.0, x)
	assert.Equal(t, 25.0, y)
	assert.True(t, in.IsMouseButtonPressed(MouseButtonLeft))
	assert.False(t, in.IsMouseButtonPressed(MouseButtonRight))

	in.Update(RawMouseInput{Button: MouseButtonLeft, State: Released})
	assert.False(t, in.IsMouseButtonPressed(MouseButtonLeft))
}

func TestModifiers(t *testing.T) {
	in := NewInputContext()
	in.Update(RawModifiersChanged{Mods: ModShift | ModControl})
	assert.True(t, in.Modifiers().HasShift())
	assert.True(t, in.Modifiers().HasControl())
	assert.False(t, in.Modifiers().HasAlt())
}
