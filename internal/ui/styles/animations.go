// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the redraft TUI.
package styles

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// DotsSpinner - Classic three-dot animation, used while a correction check
// is in flight.
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// LineSpinner - Simple line rotation
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// PulseSpinner - Pulsing indicator for the assistant "thinking" state
var PulseSpinner = SpinnerConfig{
	Frames: []string{"( )", "(.)", "(o)", "(O)", "(o)", "(.)", "( )", "   "},
	FPS:    8,
}

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	return time.Second / time.Duration(s.FPS)
}

// =============================================================================
// EASING FUNCTIONS
// =============================================================================

// EasingFunc is a function that maps progress (0-1) to output (0-1).
type EasingFunc func(t float64) float64

// EaseLinear - constant speed
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutQuad - decelerating to zero
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseOutCubic - decelerating to zero (smoother)
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// EaseInOutQuad - acceleration until halfway, then deceleration
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// TransitionConfig defines a transition animation.
type TransitionConfig struct {
	Duration time.Duration
	Easing   EasingFunc
}

// Default transitions
var (
	TransitionFast = TransitionConfig{
		Duration: 150 * time.Millisecond,
		Easing:   EaseOutQuad,
	}
	TransitionNormal = TransitionConfig{
		Duration: 300 * time.Millisecond,
		Easing:   EaseOutCubic,
	}
)

// =============================================================================
// SPRING ANIMATIONS
// =============================================================================

// Spring tuning for the two animated surfaces. Bubbles overshoot slightly
// for a lively entrance; the suggestion banner is critically damped so it
// never bounces over the input area.
const (
	AnimationFPS = 60

	BubbleSpringFrequency = 7.0
	BubbleSpringDamping   = 0.65

	BannerSpringFrequency = 9.0
	BannerSpringDamping   = 1.0
)

// FrameInterval is the tick interval driving spring animations.
var FrameInterval = time.Second / AnimationFPS

// EntranceSpring animates a one-dimensional offset toward zero, used for
// message bubble slide-in and the suggestion banner reveal.
type EntranceSpring struct {
	spring   harmonica.Spring
	position float64
	velocity float64
}

// NewBubbleSpring returns a spring starting at offset (columns away from the
// bubble's resting position) that settles to zero.
func NewBubbleSpring(offset float64) *EntranceSpring {
	return &EntranceSpring{
		spring:   harmonica.NewSpring(harmonica.FPS(AnimationFPS), BubbleSpringFrequency, BubbleSpringDamping),
		position: offset,
	}
}

// NewBannerSpring returns a critically damped spring for the suggestion
// banner, starting at offset rows below its resting position.
func NewBannerSpring(offset float64) *EntranceSpring {
	return &EntranceSpring{
		spring:   harmonica.NewSpring(harmonica.FPS(AnimationFPS), BannerSpringFrequency, BannerSpringDamping),
		position: offset,
	}
}

// Update advances the spring by one frame.
func (e *EntranceSpring) Update() {
	e.position, e.velocity = e.spring.Update(e.position, e.velocity, 0)
}

// Offset returns the current integer offset from the resting position.
func (e *EntranceSpring) Offset() int {
	return int(math.Round(e.position))
}

// Settled reports whether the spring has effectively reached rest.
func (e *EntranceSpring) Settled() bool {
	return math.Abs(e.position) < 0.05 && math.Abs(e.velocity) < 0.05
}
