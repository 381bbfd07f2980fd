package systems

import (
	"io"

	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/input"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
)

// Context is everything the systems of one match share. It replaces ambient
// singletons so a match can be built, stepped and restored in isolation.
type Context struct {
	Store  *engine.Store
	Queue  *action.Queue
	Logger *log.Logger
	// Sources feeds each fighter slot; a missing slot is idle.
	Sources []input.Source
}

func NewContext(store *engine.Store, logger *log.Logger, sources ...input.Source) *Context {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Context{
		Store:   store,
		Queue:   action.NewQueue(),
		Logger:  logger,
		Sources: sources,
	}
}

func (c *Context) World() donburi.World { return c.Store.World() }

func (c *Context) source(slot int) input.Source {
	if slot >= 0 && slot < len(c.Sources) && c.Sources[slot] != nil {
		return c.Sources[slot]
	}
	return input.Idle{}
}

// request queues a transition for e unless one is already decided this tick.
func (c *Context) request(e donburi.Entity, kind action.Kind, p action.Payload) bool {
	ok := c.Queue.Submit(action.Request{Entity: e, Kind: kind, Payload: p})
	if !ok {
		c.Logger.Debug("transition rejected", "entity", e, "kind", kind)
	}
	return ok
}
