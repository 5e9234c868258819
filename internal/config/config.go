package config

import "time"

// Playfield size in logical units. The simulation wraps against these bounds
// and every renderer maps them onto its own output.
const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

// Frame pacing for the terminal and SSH loops.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal render area is clamped so huge terminals don't cost a fortune per frame.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
)
