package animation

import "math"

// Playback is the mutable cursor of an actor's current clip.
type Playback struct {
	Clip    string
	Frame   int
	Acc     float64
	Speed   float64
	Looping bool
	Playing bool
}

// Play restarts playback on clip.
func (p *Playback) Play(clip string, looping bool, speed float64) {
	if speed <= 0 {
		speed = 1
	}
	*p = Playback{Clip: clip, Speed: speed, Looping: looping, Playing: true}
}

// Advance accumulates dt scaled by the play speed and moves the frame by every
// whole frame that elapsed. Looping clips wrap, others clamp to the last frame.
// It returns the number of frames stepped.
func (p *Playback) Advance(frames int, dt, secPerFrame float64) int {
	if !p.Playing || frames <= 0 || dt <= 0 {
		return 0
	}
	p.Acc += dt * p.Speed
	n := int(math.Floor(p.Acc/secPerFrame + 1e-9))
	if n <= 0 {
		return 0
	}
	p.Acc -= float64(n) * secPerFrame
	if p.Acc < 0 {
		p.Acc = 0
	}

	if p.Looping {
		p.Frame = (p.Frame + n) % frames
		return n
	}
	next := p.Frame + n
	if next >= frames-1 {
		n -= next - (frames - 1)
		next = frames - 1
	}
	p.Frame = next
	return n
}

// Done reports whether a one-shot clip is showing its last frame.
func (p *Playback) Done(frames int) bool {
	return !p.Looping && p.Frame >= frames-1
}
