package match

import (
	"errors"
	"fmt"

	"github.com/quasilyte/gdata"
)

// AppName is the gdata application directory for saved snapshots.
const AppName = "fightcore"

var ErrNoSlot = errors.New("save slot is empty")

// Slots stores encoded snapshots under names in the platform data directory.
type Slots struct {
	m *gdata.Manager
}

func OpenSlots(appName string) (*Slots, error) {
	if appName == "" {
		appName = AppName
	}
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open save slots: %w", err)
	}
	return &Slots{m: m}, nil
}

func slotKey(name string) string { return "slot_" + name }

// Save encodes snap into the slot name, replacing what was there.
func (s *Slots) Save(name string, snap *Snapshot) error {
	data, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := s.m.SaveItem(slotKey(name), data); err != nil {
		return fmt.Errorf("save slot %s: %w", name, err)
	}
	return nil
}

func (s *Slots) Load(name string) (*Snapshot, error) {
	data, err := s.m.LoadItem(slotKey(name))
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("slot %s: %w", name, ErrNoSlot)
	}
	return DecodeSnapshot(data)
}

// Exists reports whether the slot holds a snapshot.
func (s *Slots) Exists(name string) bool {
	data, err := s.m.LoadItem(slotKey(name))
	return err == nil && len(data) > 0
}

// Delete empties the slot.
func (s *Slots) Delete(name string) error {
	if err := s.m.SaveItem(slotKey(name), nil); err != nil {
		return fmt.Errorf("clear slot %s: %w", name, err)
	}
	return nil
}
