// Package level defines the level descriptor schema, its validation and the
// sources levels are read from (embedded built-ins or a directory of YAML files).
// Descriptors are immutable once loaded and shared read-only across attempts.
package level

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/starhop/internal/core"
)

// Point is a position in world units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Vec converts the point to a core.Vec.
func (p Point) Vec() core.Vec {
	return core.V(p.X, p.Y)
}

// PlatformKind selects how a platform reacts to being stood on.
type PlatformKind int

const (
	PlatformStatic  PlatformKind = iota // Solid forever
	PlatformCrumble                     // Vanishes shortly after first landing
)

// String returns the YAML name of the kind.
func (k PlatformKind) String() string {
	switch k {
	case PlatformStatic:
		return "static"
	case PlatformCrumble:
		return "crumble"
	default:
		return fmt.Sprintf("PlatformKind(%d)", int(k))
	}
}

// UnmarshalYAML parses "static" or "crumble".
func (k *PlatformKind) UnmarshalYAML(n *yaml.Node) error {
	switch n.Value {
	case "", "static":
		*k = PlatformStatic
	case "crumble":
		*k = PlatformCrumble
	default:
		return &ConfigError{Code: CodeBadKind, Field: "kind", Message: fmt.Sprintf("unknown platform kind %q", n.Value)}
	}
	return nil
}

// MarshalYAML writes the kind by name.
func (k PlatformKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// MoveSpec turns a platform into a back-and-forth oscillator between its
// spawn position and spawn+(DX, DY). Duration is one leg; a full round trip
// takes twice as long.
type MoveSpec struct {
	DX       float64 `yaml:"x,omitempty"`
	DY       float64 `yaml:"y,omitempty"`
	Duration int     `yaml:"duration"` // milliseconds
}

// Offset returns the displacement at the far end of the path.
func (m MoveSpec) Offset() core.Vec {
	return core.V(m.DX, m.DY)
}

// Period returns the full there-and-back period.
func (m MoveSpec) Period() time.Duration {
	return 2 * time.Duration(m.Duration) * time.Millisecond
}

// PlatformSpec describes one platform by its center and size.
type PlatformSpec struct {
	X    float64      `yaml:"x"`
	Y    float64      `yaml:"y"`
	W    float64      `yaml:"w"`
	H    float64      `yaml:"h"`
	Kind PlatformKind `yaml:"kind,omitempty"`
	Move *MoveSpec    `yaml:"move,omitempty"`
}

// Center returns the spawn position.
func (p PlatformSpec) Center() core.Vec {
	return core.V(p.X, p.Y)
}

// Moving reports whether the platform oscillates.
func (p PlatformSpec) Moving() bool {
	return p.Move != nil
}

// EnemyType selects an enemy's motion pattern.
type EnemyType int

const (
	EnemyGround   EnemyType = iota // Walks a patrol route under gravity
	EnemyFlying                    // Patrols horizontally, ignores gravity
	EnemyVertical                  // Bobs up and down in place
)

// String returns the YAML name of the type.
func (t EnemyType) String() string {
	switch t {
	case EnemyGround:
		return "ground"
	case EnemyFlying:
		return "flying"
	case EnemyVertical:
		return "vertical"
	default:
		return fmt.Sprintf("EnemyType(%d)", int(t))
	}
}

// UnmarshalYAML parses "ground", "flying" or "vertical".
func (t *EnemyType) UnmarshalYAML(n *yaml.Node) error {
	switch n.Value {
	case "", "ground":
		*t = EnemyGround
	case "flying":
		*t = EnemyFlying
	case "vertical":
		*t = EnemyVertical
	default:
		return &ConfigError{Code: CodeBadEnemyType, Field: "type", Message: fmt.Sprintf("unknown enemy type %q", n.Value)}
	}
	return nil
}

// MarshalYAML writes the type by name.
func (t EnemyType) MarshalYAML() (any, error) {
	return t.String(), nil
}

// EnemySpec describes one enemy spawn.
type EnemySpec struct {
	X     float64   `yaml:"x"`
	Y     float64   `yaml:"y"`
	Type  EnemyType `yaml:"type,omitempty"`
	Range *float64  `yaml:"range,omitempty"` // vertical amplitude; nil means the tuning default
}

// Amplitude returns the vertical oscillation range, falling back to def.
func (e EnemySpec) Amplitude(def float64) float64 {
	if e.Range == nil {
		return def
	}
	return *e.Range
}

// Descriptor is the immutable description of one level.
type Descriptor struct {
	ID          int            `yaml:"id"`
	Name        string         `yaml:"name"`
	Width       float64        `yaml:"width"`
	Height      float64        `yaml:"height"`
	HasGround   bool           `yaml:"hasGround"`
	PlayerStart Point          `yaml:"playerStart"`
	Goal        Point          `yaml:"goal"`
	Platforms   []PlatformSpec `yaml:"platforms"`
	Stars       []Point        `yaml:"stars"`
	Enemies     []EnemySpec    `yaml:"enemies"`
}

// rawDescriptor mirrors Descriptor with pointers where absence matters.
type rawDescriptor struct {
	ID          int            `yaml:"id"`
	Name        string         `yaml:"name"`
	Width       float64        `yaml:"width"`
	Height      float64        `yaml:"height"`
	HasGround   *bool          `yaml:"hasGround"`
	PlayerStart *Point         `yaml:"playerStart"`
	Goal        *Point         `yaml:"goal"`
	Platforms   []PlatformSpec `yaml:"platforms"`
	Stars       []Point        `yaml:"stars"`
	Enemies     []EnemySpec    `yaml:"enemies"`
}

// UnmarshalYAML decodes a descriptor, defaulting hasGround to true and
// rejecting documents without a start or goal point.
func (d *Descriptor) UnmarshalYAML(n *yaml.Node) error {
	var r rawDescriptor
	if err := n.Decode(&r); err != nil {
		return err
	}
	if r.PlayerStart == nil {
		return &ConfigError{Code: CodeMissingField, Field: "playerStart", Message: "player start point is required"}
	}
	if r.Goal == nil {
		return &ConfigError{Code: CodeMissingField, Field: "goal", Message: "goal point is required"}
	}
	hasGround := true
	if r.HasGround != nil {
		hasGround = *r.HasGround
	}
	*d = Descriptor{
		ID:          r.ID,
		Name:        r.Name,
		Width:       r.Width,
		Height:      r.Height,
		HasGround:   hasGround,
		PlayerStart: *r.PlayerStart,
		Goal:        *r.Goal,
		Platforms:   r.Platforms,
		Stars:       r.Stars,
		Enemies:     r.Enemies,
	}
	return nil
}

// Parse decodes and validates a single YAML level document.
func Parse(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Descriptor{}, fmt.Errorf("level: yaml unmarshal: %w", err)
	}
	if err := Validate(d); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Bounds returns the world rectangle.
func (d Descriptor) Bounds() core.Rect {
	return core.NewRect(0, 0, d.Width, d.Height)
}
