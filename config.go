package navmesh2d

import "navmesh2d/geometry"

// DefaultAccuracy is the common default: two decimal digits of
// planning precision.
const DefaultAccuracy = geometry.Accuracy100

// WorldConfig describes the bounded planar world a Nav2D operates
// over: a plain JSON-tagged struct with a Normalized method that
// clamps invalid fields to safe defaults rather than erroring,
// reserving hard failures for cases that actually need one — an
// undersized world rectangle, a rejected polygon.
type WorldConfig struct {
	MinCorner   geometry.Vector2  `json:"minCorner"`
	MaxCorner   geometry.Vector2  `json:"maxCorner"`
	AgentRadius float64           `json:"agentRadius"`
	Accuracy    geometry.Accuracy `json:"accuracy"`
}

// Normalized clamps fields that have a sane default in place of a
// zero value, without touching the world corners: an undersized world
// area is rejected by NewNav2D, not silently repaired here. A nonzero
// but unsupported accuracy is left as is; NewNav2D replaces it with
// DefaultAccuracy.
func (c WorldConfig) Normalized() WorldConfig {
	normalized := c
	if normalized.Accuracy == 0 {
		normalized.Accuracy = DefaultAccuracy
	}
	if normalized.AgentRadius < 0 {
		normalized.AgentRadius = 0
	}
	return normalized
}

// DefaultWorldConfig returns a WorldConfig with a modest default
// world and the common accuracy level.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		MinCorner:   geometry.Vector2{X: -50, Y: -50},
		MaxCorner:   geometry.Vector2{X: 50, Y: 50},
		AgentRadius: 0.5,
		Accuracy:    DefaultAccuracy,
	}
}
