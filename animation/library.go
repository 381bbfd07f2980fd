package animation

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownAnimation is returned for a clip name that was never registered.
var ErrUnknownAnimation = errors.New("unknown animation")

type UnknownAnimationError struct {
	Name string
}

func (e *UnknownAnimationError) Error() string {
	return fmt.Sprintf("animation %q: %v", e.Name, ErrUnknownAnimation)
}

func (e *UnknownAnimationError) Unwrap() error { return ErrUnknownAnimation }

// Library is the read-only clip lookup for one character.
type Library struct {
	clips map[string]*Clip
}

func NewLibrary() *Library {
	return &Library{clips: make(map[string]*Clip)}
}

// Add registers c, replacing a clip with the same name.
func (l *Library) Add(c *Clip) {
	l.clips[c.Name] = c
}

func (l *Library) Get(name string) (*Clip, error) {
	c, ok := l.clips[name]
	if !ok {
		return nil, &UnknownAnimationError{Name: name}
	}
	return c, nil
}

func (l *Library) Has(name string) bool {
	_, ok := l.clips[name]
	return ok
}

func (l *Library) Len() int { return len(l.clips) }

// Names lists clip names sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.clips))
	for name := range l.clips {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
