package input_test

import (
	"strings"
	"testing"

	"github.com/automoto/fightcore/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func push(b *input.Buffer, states ...input.State) {
	for _, s := range states {
		b.Push(s)
	}
}

func TestParse(t *testing.T) {
	s, err := input.Parse("down+right+btn1")
	require.NoError(t, err)
	assert.Equal(t, input.Down|input.Right|input.Btn1, s)
	assert.Equal(t, "down+right+btn1", s.String())

	_, err = input.Parse("left+kick")
	assert.Error(t, err)
}

func TestDirection(t *testing.T) {
	assert.Equal(t, input.Direction(6), input.Right.Direction(true))
	assert.Equal(t, input.Direction(4), input.Right.Direction(false))
	assert.Equal(t, input.Direction(3), (input.Down | input.Right).Direction(true))
	assert.Equal(t, input.Direction(5), (input.Left | input.Right).Direction(true))
}

func TestBufferPressed(t *testing.T) {
	var b input.Buffer
	push(&b, 0, input.Btn1)
	assert.True(t, b.Pressed(input.Btn1))

	push(&b, input.Btn1)
	assert.False(t, b.Pressed(input.Btn1), "held is not pressed")

	push(&b, 0)
	assert.True(t, b.Released(input.Btn1))

	push(&b, input.Btn2|input.Btn3)
	btn, ok := b.PressedButton()
	assert.True(t, ok)
	assert.Equal(t, input.Btn2, btn)
}

func TestMotion(t *testing.T) {
	qcf := input.Motion{Name: "qcf", Sequence: []input.Direction{2, 3, 6}, Button: input.Btn1, Window: 12}

	var b input.Buffer
	push(&b, input.Down, input.Down|input.Right, input.Right, input.Btn1)
	assert.True(t, b.Matches(qcf, true))
	assert.False(t, b.Matches(qcf, false), "mirrored when facing left")

	var late input.Buffer
	push(&late, input.Down, input.Down|input.Right, input.Right)
	for i := 0; i < 12; i++ {
		late.Push(0)
	}
	late.Push(input.Btn1)
	assert.False(t, late.Matches(qcf, true), "outside the window")
}

func TestDoubleTap(t *testing.T) {
	var b input.Buffer
	push(&b, input.Right, 0, input.Right)
	assert.True(t, b.DoubleTap(input.Right, 10))

	var held input.Buffer
	push(&held, 0, input.Right)
	assert.False(t, held.DoubleTap(input.Right, 10))
}

func TestScript(t *testing.T) {
	src := `
name: jab
loop: false
steps:
  - frames: 2
    hold: "-"
  - frames: 1
    hold: btn1
`
	s, err := input.LoadScript(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, input.State(0), s.Poll(1))
	assert.Equal(t, input.Btn1, s.Poll(3))
	assert.Equal(t, input.State(0), s.Poll(4))

	looped, err := input.NewScript("walk", true, input.Step{Frames: 1, Hold: "left"}, input.Step{Frames: 1, Hold: "right"})
	require.NoError(t, err)
	assert.Equal(t, input.Left, looped.Poll(3))
}
