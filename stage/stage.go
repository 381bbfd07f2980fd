// Package stage describes the arena a match is fought in: its solids and the
// spawn point of each fighter slot. Stages come from Tiled maps or from the
// built-in arena.
package stage

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/systems/factory"
	"github.com/automoto/fightcore/tags"
	"github.com/lafriks/go-tiled"
	"github.com/yohamta/donburi"
)

// Object group and layer names read from a map.
const (
	FloorGroup  = "Floor"
	WallsGroup  = "Walls"
	SpawnsGroup = "Spawns"
	SolidLayer  = "wg-tiles"
)

type Solid struct {
	X, Y, W, H float64
	Floor      bool
}

// Spawn is where a slot's fighter stands at the start, feet center.
type Spawn struct {
	X, Y float64
	Slot int
}

type Stage struct {
	Name   string
	Width  int
	Height int
	Solids []Solid
	Spawns []Spawn
}

// Spawn returns the spawn point of slot, or false when the stage has none.
func (s *Stage) Spawn(slot int) (Spawn, bool) {
	for _, sp := range s.Spawns {
		if sp.Slot == slot {
			return sp, true
		}
	}
	return Spawn{}, false
}

// FacingRight reports whether a fighter spawned at sp starts facing right,
// which is true on the left half of the stage.
func (s *Stage) FacingRight(sp Spawn) bool {
	return sp.X < float64(s.Width)/2
}

// Default is the flat arena described by config.Arena.
func Default() *Stage {
	a := config.Arena
	center := a.Width / 2
	return &Stage{
		Name:   "arena",
		Width:  int(a.Width),
		Height: int(a.Height),
		Solids: []Solid{
			{X: 0, Y: a.FloorY, W: a.Width, H: a.Height - a.FloorY, Floor: true},
			{X: 0, Y: 0, W: a.WallWidth, H: a.FloorY},
			{X: a.Width - a.WallWidth, Y: 0, W: a.WallWidth, H: a.FloorY},
		},
		Spawns: []Spawn{
			{X: center - a.SpawnInset, Y: a.FloorY, Slot: 0},
			{X: center + a.SpawnInset, Y: a.FloorY, Slot: 1},
		},
	}
}

// Load parses a TMX map. Solids come from the Floor and Walls object groups
// and from any tile on the wg-tiles layer. It takes an fs.FS so callers can
// pass embed.FS or os.DirFS.
func Load(fsys fs.FS, tmxPath string) (*Stage, error) {
	m, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	st := &Stage{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width:  m.Width * m.TileWidth,
		Height: m.Height * m.TileHeight,
	}

	tileW := float64(m.TileWidth)
	tileH := float64(m.TileHeight)
	for _, layer := range m.Layers {
		if layer.Name != SolidLayer {
			continue
		}
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if layer.Tiles[y*m.Width+x].IsNil() {
					continue
				}
				st.Solids = append(st.Solids, Solid{
					X: float64(x) * tileW,
					Y: float64(y) * tileH,
					W: tileW,
					H: tileH,
				})
			}
		}
		break
	}

	for _, og := range m.ObjectGroups {
		switch og.Name {
		case FloorGroup, WallsGroup:
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					return nil, fmt.Errorf("stage %s: object %d in %s has no area", st.Name, o.ID, og.Name)
				}
				st.Solids = append(st.Solids, Solid{
					X:     o.X,
					Y:     o.Y,
					W:     o.Width,
					H:     o.Height,
					Floor: og.Name == FloorGroup,
				})
			}
		case SpawnsGroup:
			for _, o := range og.Objects {
				st.Spawns = append(st.Spawns, Spawn{
					X:    o.X,
					Y:    o.Y,
					Slot: o.Properties.GetInt("slot"),
				})
			}
		}
	}

	if len(st.Solids) == 0 {
		return nil, fmt.Errorf("stage %s: no solids", st.Name)
	}
	sort.Slice(st.Spawns, func(i, j int) bool {
		return st.Spawns[i].Slot < st.Spawns[j].Slot
	})
	return st, nil
}

// LoadAll loads every .tmx file in dir, keyed by file stem, with the sorted
// list of names.
func LoadAll(fsys fs.FS, dir string) (map[string]*Stage, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	stages := make(map[string]*Stage, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		st, err := Load(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		stages[st.Name] = st
		names = append(names, st.Name)
	}
	sort.Strings(names)
	return stages, names, nil
}

// Build creates the resolv space and one wall entity per solid.
func (s *Stage) Build(store *engine.Store) *donburi.Entry {
	cell := config.Physics.CellSize
	space := factory.CreateSpace(store, s.Width, s.Height, cell)
	for _, sol := range s.Solids {
		if sol.Floor {
			factory.CreateWall(store, sol.X, sol.Y, sol.W, sol.H, tags.ResolvFloor)
			continue
		}
		factory.CreateWall(store, sol.X, sol.Y, sol.W, sol.H)
	}
	return space
}
