package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/molten/liquid"
	"github.com/milk9111/molten/movingblock"
)

const (
	MovingBlockFile = "moving_block.yaml"
	LiquidFile      = "liquid.yaml"
	PlayerFile      = "player.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type MovingBlockSpec struct {
	Name        string          `yaml:"name"`
	Width       float64         `yaml:"width"`
	Height      float64         `yaml:"height"`
	Mass        float64         `yaml:"mass"`
	Color       *YAMLColor      `yaml:"color"`
	DirX        float64         `yaml:"dir_x"`
	DirY        float64         `yaml:"dir_y"`
	Distance    float64         `yaml:"distance"`
	ZoomSpeed   float64         `yaml:"zoom_speed"`
	ReturnAccel float64         `yaml:"return_accel"`
	ReturnSpeed float64         `yaml:"return_speed"`
	Epsilon     float64         `yaml:"epsilon"`
	Activation  ActivationSpec  `yaml:"activation"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

type ActivationSpec struct {
	Script   string  `yaml:"script"`
	Range    float64 `yaml:"range"`
	Cooldown int     `yaml:"cooldown"`
}

// Tuning converts the spec to mover tuning for a fixed step of step seconds.
func (s MovingBlockSpec) Tuning(step float64) movingblock.Tuning {
	return movingblock.Tuning{
		DirX:        s.DirX,
		DirY:        s.DirY,
		Distance:    s.Distance,
		ZoomSpeed:   s.ZoomSpeed,
		ReturnAccel: s.ReturnAccel,
		ReturnSpeed: s.ReturnSpeed,
		Epsilon:     s.Epsilon,
		Step:        step,
	}
}

func LoadMovingBlockSpec() (MovingBlockSpec, error) {
	return LoadSpec[MovingBlockSpec](MovingBlockFile)
}

type LiquidSpec struct {
	Name            string     `yaml:"name"`
	ImpulseStrength float64    `yaml:"impulse_strength"`
	Damping         float64    `yaml:"damping"`
	Radius          float64    `yaml:"radius"`
	Glow            float64    `yaml:"glow"`
	Color           *YAMLColor `yaml:"color"`
}

func (s LiquidSpec) Config() liquid.Config {
	return liquid.Config{
		ImpulseStrength: s.ImpulseStrength,
		Damping:         s.Damping,
		Radius:          s.Radius,
	}
}

func LoadLiquidSpec() (LiquidSpec, error) {
	return LoadSpec[LiquidSpec](LiquidFile)
}

type PlayerSpec struct {
	Name        string          `yaml:"name"`
	MoveSpeed   float64         `yaml:"move_speed"`
	JumpSpeed   float64         `yaml:"jump_speed"`
	Width       float64         `yaml:"width"`
	Height      float64         `yaml:"height"`
	Color       *YAMLColor      `yaml:"color"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

func LoadPlayerSpec() (PlayerSpec, error) {
	return LoadSpec[PlayerSpec](PlayerFile)
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

// RGBA8 returns the color as color.RGBA, or fallback when unset.
func (c *YAMLColor) RGBA8(fallback color.RGBA) color.RGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(strings.TrimSpace(value.Value))]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
