package level

import (
	"fmt"
)

// Error codes carried by ConfigError.
const (
	CodeMissingField = "MISSING_FIELD"
	CodeOutOfBounds  = "OUT_OF_BOUNDS"
	CodeBadSize      = "BAD_SIZE"
	CodeBadKind      = "BAD_KIND"
	CodeBadEnemyType = "BAD_ENEMY_TYPE"
	CodeBadRange     = "BAD_RANGE"
	CodeBadMove      = "BAD_MOVE"
	CodeDuplicateID  = "DUPLICATE_ID"
)

// ConfigError reports a descriptor that cannot be loaded.
// It is fatal to starting an attempt; nothing is ever coerced.
type ConfigError struct {
	Code    string
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("level: [%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("level: [%s] %s: %s", e.Code, e.Field, e.Message)
}

func configErr(code, field, format string, args ...any) error {
	return &ConfigError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks a descriptor against the schema invariants:
//   - id, name and a positive world size are present
//   - every position (start, goal, platform centers and travel end points,
//     stars, enemies and the reach of vertical enemies) lies inside the world
//   - platforms have a positive size and a valid kind
//   - moving platforms have a positive duration and a non-zero offset
//   - enemies have a valid type and any explicit range is positive
func Validate(d Descriptor) error {
	if d.ID <= 0 {
		return configErr(CodeMissingField, "id", "must be a positive integer, got %d", d.ID)
	}
	if d.Name == "" {
		return configErr(CodeMissingField, "name", "must not be empty")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return configErr(CodeBadSize, "width/height", "world size must be positive, got %vx%v", d.Width, d.Height)
	}

	if err := checkPoint(d, "playerStart", d.PlayerStart); err != nil {
		return err
	}
	if err := checkPoint(d, "goal", d.Goal); err != nil {
		return err
	}

	for i, p := range d.Platforms {
		field := fmt.Sprintf("platforms[%d]", i)
		if p.W <= 0 || p.H <= 0 {
			return configErr(CodeBadSize, field, "size must be positive, got %vx%v", p.W, p.H)
		}
		if p.Kind != PlatformStatic && p.Kind != PlatformCrumble {
			return configErr(CodeBadKind, field, "unknown kind %v", p.Kind)
		}
		if err := checkPoint(d, field, Point{X: p.X, Y: p.Y}); err != nil {
			return err
		}
		if p.Move != nil {
			if p.Move.Duration <= 0 {
				return configErr(CodeBadMove, field, "move duration must be positive, got %d", p.Move.Duration)
			}
			if p.Move.DX == 0 && p.Move.DY == 0 {
				return configErr(CodeBadMove, field, "move offset must not be zero")
			}
			end := Point{X: p.X + p.Move.DX, Y: p.Y + p.Move.DY}
			if err := checkPoint(d, field+".move", end); err != nil {
				return err
			}
		}
	}

	for i, s := range d.Stars {
		if err := checkPoint(d, fmt.Sprintf("stars[%d]", i), s); err != nil {
			return err
		}
	}

	for i, e := range d.Enemies {
		field := fmt.Sprintf("enemies[%d]", i)
		switch e.Type {
		case EnemyGround, EnemyFlying, EnemyVertical:
		default:
			return configErr(CodeBadEnemyType, field, "unknown type %v", e.Type)
		}
		if e.Range != nil && *e.Range <= 0 {
			return configErr(CodeBadRange, field, "range must be positive, got %v", *e.Range)
		}
		if err := checkPoint(d, field, Point{X: e.X, Y: e.Y}); err != nil {
			return err
		}
		if e.Type == EnemyVertical && e.Range != nil {
			if err := checkPoint(d, field+".range", Point{X: e.X, Y: e.Y + *e.Range}); err != nil {
				return err
			}
		}
	}

	return nil
}

// checkPoint ensures p lies within [0,width]×[0,height].
func checkPoint(d Descriptor, field string, p Point) error {
	if p.X < 0 || p.X > d.Width || p.Y < 0 || p.Y > d.Height {
		return configErr(CodeOutOfBounds, field, "(%v, %v) lies outside the %vx%v world", p.X, p.Y, d.Width, d.Height)
	}
	return nil
}
