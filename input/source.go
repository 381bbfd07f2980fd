package input

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Source yields the input state of one actor for a frame.
type Source interface {
	Poll(frame uint64) State
}

// Idle is a source that never presses anything.
type Idle struct{}

func (Idle) Poll(uint64) State { return 0 }

// Step holds a set of buttons for a number of frames.
type Step struct {
	Frames int    `yaml:"frames"`
	Hold   string `yaml:"hold"`
}

// Script replays authored steps for headless runs. Past its end it either
// loops or holds nothing.
type Script struct {
	Name  string `yaml:"name"`
	Loop  bool   `yaml:"loop"`
	Steps []Step `yaml:"steps"`

	states []State
}

// LoadScript decodes a YAML script.
func LoadScript(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode input script: %w", err)
	}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return &s, nil
}

// NewScript builds a script from already parsed steps.
func NewScript(name string, loop bool, steps ...Step) (*Script, error) {
	s := &Script{Name: name, Loop: loop, Steps: steps}
	if err := s.compile(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Script) compile() error {
	s.states = s.states[:0]
	for i, step := range s.Steps {
		st, err := Parse(step.Hold)
		if err != nil {
			return fmt.Errorf("script %s step %d: %w", s.Name, i, err)
		}
		for f := 0; f < step.Frames; f++ {
			s.states = append(s.states, st)
		}
	}
	return nil
}

// Len is the scripted length in frames.
func (s *Script) Len() int { return len(s.states) }

// Poll returns the state for frame, counted from 1.
func (s *Script) Poll(frame uint64) State {
	if len(s.states) == 0 || frame == 0 {
		return 0
	}
	i := int(frame - 1)
	if i >= len(s.states) {
		if !s.Loop {
			return 0
		}
		i %= len(s.states)
	}
	return s.states[i]
}
