// Package config provides YAML-based tuning for the starhop simulation:
// physics constants, entity sizes, enemy behavior and scoring.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/starhop/internal/core"
)

// Tuning contains every constant the simulation reads.
type Tuning struct {
	TickRate int            `yaml:"tick_rate"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Player   PlayerConfig   `yaml:"player"`
	Enemies  EnemyConfig    `yaml:"enemies"`
	Platform PlatformConfig `yaml:"platforms"`
	Items    ItemConfig     `yaml:"items"`
	Ground   GroundConfig   `yaml:"ground"`
	Unlock   UnlockConfig   `yaml:"unlock"`
}

// PhysicsConfig defines world-wide motion parameters.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`        // units/s², applied to player and ground enemies
	FallThreshold float64 `yaml:"fall_threshold"` // y beyond which an entity has fallen out of the world
}

// PlayerConfig defines the player body and controls.
type PlayerConfig struct {
	Width    float64      `yaml:"width"`
	Height   float64      `yaml:"height"`
	RunSpeed float64      `yaml:"run_speed"`
	Jump     JumpImpulses `yaml:"jump_impulse"`
	MaxJumps int          `yaml:"max_jumps"` // jumps allowed between groundings for the agile variant
}

// JumpImpulses holds the vertical launch velocity per character (negative is up).
type JumpImpulses struct {
	Standard float64 `yaml:"standard"`
	Agile    float64 `yaml:"agile"`
}

// EnemyConfig defines enemy bodies and motion.
type EnemyConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	PatrolRange    float64 `yaml:"patrol_range"` // half-width of the patrol envelope around origin x
	GroundSpeed    float64 `yaml:"ground_speed"` // ground patroller speed
	FlyingSpeed    float64 `yaml:"flying_speed"` // flying patroller speed
	StallThreshold float64 `yaml:"stall_threshold"`
	VerticalRange  float64 `yaml:"vertical_range"` // default oscillation amplitude for vertical enemies
	VerticalPeriod int     `yaml:"vertical_period_ms"`
}

// PlatformConfig defines platform behavior timings.
type PlatformConfig struct {
	CrumbleWindow int `yaml:"crumble_window_ms"`
}

// ItemConfig defines collectible and goal sizes and scoring.
type ItemConfig struct {
	StarSize   float64 `yaml:"star_size"`
	StarPoints int     `yaml:"star_points"`
	GoalWidth  float64 `yaml:"goal_width"`
	GoalHeight float64 `yaml:"goal_height"`
}

// GroundConfig places the full-width ground strip used by levels with ground.
type GroundConfig struct {
	CenterY float64 `yaml:"center_y"`
	Height  float64 `yaml:"height"`
}

// UnlockConfig lists the level ids that must be cleared to play the agile character.
type UnlockConfig struct {
	AgileRequires []int `yaml:"agile_requires"`
}

// JumpImpulse returns the launch velocity for a character.
func (t Tuning) JumpImpulse(c core.Character) float64 {
	if c == core.CharacterAgile {
		return t.Player.Jump.Agile
	}
	return t.Player.Jump.Standard
}

// TickInterval returns the fixed simulation step.
func (t Tuning) TickInterval() time.Duration {
	return core.TickInterval(t.TickRate)
}

// CrumbleWindow returns how long a crumble platform decays before vanishing.
func (t Tuning) CrumbleWindow() time.Duration {
	return time.Duration(t.Platform.CrumbleWindow) * time.Millisecond
}

// VerticalPeriod returns the round-trip period of vertical enemies.
func (t Tuning) VerticalPeriod() time.Duration {
	return time.Duration(t.Enemies.VerticalPeriod) * time.Millisecond
}

// Validate rejects tunings the simulation cannot run with.
func (t Tuning) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{t.TickRate > 0, "tick_rate must be positive"},
		{t.Physics.Gravity > 0, "physics.gravity must be positive"},
		{t.Physics.FallThreshold > 0, "physics.fall_threshold must be positive"},
		{t.Player.Width > 0 && t.Player.Height > 0, "player size must be positive"},
		{t.Player.RunSpeed > 0, "player.run_speed must be positive"},
		{t.Player.Jump.Standard < 0 && t.Player.Jump.Agile < 0, "jump impulses must be negative (upward)"},
		{t.Player.MaxJumps >= 1, "player.max_jumps must be at least 1"},
		{t.Enemies.Width > 0 && t.Enemies.Height > 0, "enemy size must be positive"},
		{t.Enemies.PatrolRange > 0, "enemies.patrol_range must be positive"},
		{t.Enemies.GroundSpeed > t.Enemies.StallThreshold, "enemies.ground_speed must exceed stall_threshold"},
		{t.Enemies.FlyingSpeed > t.Enemies.StallThreshold, "enemies.flying_speed must exceed stall_threshold"},
		{t.Enemies.VerticalRange > 0, "enemies.vertical_range must be positive"},
		{t.Enemies.VerticalPeriod > 0, "enemies.vertical_period_ms must be positive"},
		{t.Platform.CrumbleWindow > 0, "platforms.crumble_window_ms must be positive"},
		{t.Items.StarSize > 0 && t.Items.GoalWidth > 0 && t.Items.GoalHeight > 0, "item sizes must be positive"},
		{t.Items.StarPoints >= 0, "items.star_points must not be negative"},
		{t.Ground.Height > 0, "ground.height must be positive"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("config: invalid tuning: %s", c.what)
		}
	}
	return nil
}
