// Package levels holds the embedded level layouts.
package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

const Default = "foundry"

type Level struct {
	Name   string   `json:"name"`
	Spawn  Point    `json:"spawn"`
	Rooms  []Room   `json:"rooms"`
	Walls  []Rect   `json:"walls"`
	Blocks []Block  `json:"blocks"`
	Pools  []Liquid `json:"pools,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type Room struct {
	Name string `json:"name"`
	Rect
}

// Block places a moving block. Zero direction and distance fall back to the
// prefab.
type Block struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Prefab   string  `json:"prefab,omitempty"`
	DirX     float64 `json:"dir_x,omitempty"`
	DirY     float64 `json:"dir_y,omitempty"`
	Distance float64 `json:"distance,omitempty"`
}

type Liquid struct {
	Room string `json:"room"`
	Rect
}

// Load reads a level by name; the .json extension is optional.
func Load(name string) (*Level, error) {
	if name == "" {
		name = Default
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, path.Base(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a level.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks rooms have a size and a unique name and pools name a room.
func (l *Level) Validate() error {
	if len(l.Rooms) == 0 {
		return fmt.Errorf("level %q: no rooms", l.Name)
	}
	names := make(map[string]bool, len(l.Rooms))
	for _, r := range l.Rooms {
		if r.W <= 0 || r.H <= 0 {
			return fmt.Errorf("level %q: room %q has no size", l.Name, r.Name)
		}
		if names[r.Name] {
			return fmt.Errorf("level %q: room %q declared twice", l.Name, r.Name)
		}
		names[r.Name] = true
	}
	for _, p := range l.Pools {
		if !names[p.Room] {
			return fmt.Errorf("level %q: pool references unknown room %q", l.Name, p.Room)
		}
	}
	return nil
}
