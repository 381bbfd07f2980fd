package animation

// Phase is the kind of callback a dispatch stands for.
type Phase uint8

const (
	Trigger Phase = iota
	Update
	End
)

func (p Phase) String() string {
	switch p {
	case Trigger:
		return "trigger"
	case Update:
		return "update"
	}
	return "end"
}

// MaxEvents bounds the number of events a clip can bind, one Open bit each.
const MaxEvents = 64

// Cursor is the binder state an actor carries between ticks.
type Cursor struct {
	// Last is the last frame processed, -1 before the first.
	Last int
	// Open has bit i set while event i is triggered but not ended.
	Open uint64
}

// NewCursor returns a cursor that has not processed any frame.
func NewCursor() Cursor {
	return Cursor{Last: -1}
}

func (c Cursor) IsOpen(event int) bool { return c.Open&(1<<uint(event)) != 0 }

// Dispatch is one callback the binder decided on.
type Dispatch struct {
	Event int
	Phase Phase
	// Index is the update index (frame-Start-1); zero for trigger and end.
	Index int
	Frame int
}

// Replay walks every frame after cur.Last up to and including current, in
// order, and returns the callbacks due. A current below cur.Last means the clip
// wrapped, so the walk runs to the last frame and restarts at 0.
func Replay(cur Cursor, current, frames int, events []Event) (Cursor, []Dispatch) {
	if current == cur.Last || frames <= 0 {
		return cur, nil
	}
	var out []Dispatch
	step := func(f int) {
		for i := range events {
			if i >= MaxEvents {
				break
			}
			ev := &events[i]
			bit := uint64(1) << uint(i)
			switch {
			case f == ev.Start:
				if cur.Open&bit == 0 {
					cur.Open |= bit
					out = append(out, Dispatch{Event: i, Phase: Trigger, Frame: f})
				}
			case cur.Open&bit == 0:
			case f > ev.Start && f < ev.End():
				out = append(out, Dispatch{Event: i, Phase: Update, Index: f - ev.Start - 1, Frame: f})
			case f == ev.End():
				cur.Open &^= bit
				out = append(out, Dispatch{Event: i, Phase: End, Frame: f})
			}
		}
	}

	if current < cur.Last {
		for f := cur.Last + 1; f < frames; f++ {
			step(f)
		}
		for f := 0; f <= current; f++ {
			step(f)
		}
	} else {
		for f := cur.Last + 1; f <= current; f++ {
			step(f)
		}
	}
	cur.Last = current
	return cur, out
}
