package pulltorefresh

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultConsumePercent   = 0.5
	defaultResultDurationMs = 600
	defaultMaxPullAngle     = 30.0 // degrees from vertical
	defaultMinFlingVelocity = 50.0 // pixels per second
)

// Mode selects which edges may be pulled.
type Mode uint8

const (
	ModePullBoth       Mode = iota // header and footer
	ModePullFromHeader             // header only
	ModePullFromFooter             // footer only
	ModePullDisabled               // no pulling
)

var modeNames = [...]string{
	ModePullBoth:       "both",
	ModePullFromHeader: "header",
	ModePullFromFooter: "footer",
	ModePullDisabled:   "disabled",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// AllowsHeader reports whether m permits pulling the header.
func (m Mode) AllowsHeader() bool { return m == ModePullBoth || m == ModePullFromHeader }

// AllowsFooter reports whether m permits pulling the footer.
func (m Mode) AllowsFooter() bool { return m == ModePullBoth || m == ModePullFromFooter }

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if int(m) >= len(modeNames) {
		return nil, fmt.Errorf("pulltorefresh: unknown mode %d", m)
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range modeNames {
		if n == name {
			*m = Mode(i)
			return nil
		}
	}
	return fmt.Errorf("pulltorefresh: unknown mode %q", name)
}

// Config holds the tunables of a Controller. Values are fixed for the
// lifetime of a gesture; the controller copies them at construction.
type Config struct {
	// ConsumePercent scales raw pointer and scroll movement before it becomes
	// indicator offset. Must be in [0, 1].
	ConsumePercent float64 `toml:"consume_percent"`
	// ResultDurationMs is how long a success or failure result is shown.
	ResultDurationMs int `toml:"result_duration_ms"`
	// TouchSlop is the vertical travel before a press becomes a drag.
	TouchSlop float64 `toml:"touch_slop"`
	// MaxPullAngle rejects drags further than this many degrees from vertical.
	MaxPullAngle float64 `toml:"max_pull_angle"`
	// SettleDuration is the snap-back duration in seconds.
	SettleDuration float64 `toml:"settle_duration"`
	// FlingDeceleration in pixels per second squared.
	FlingDeceleration float64 `toml:"fling_deceleration"`
	// MinFlingVelocity below which a release is treated as stationary.
	MinFlingVelocity float64 `toml:"min_fling_velocity"`
	// ReclaimRequiresSlop makes a pointer down during a settle wait for the
	// touch slop before it interrupts the animation.
	ReclaimRequiresSlop bool `toml:"reclaim_requires_slop"`
	Mode                Mode `toml:"mode"`
	OverlayMode         bool `toml:"overlay_mode"`
	Debug               bool `toml:"debug"`
}

// DefaultConfig returns the default tunables.
func DefaultConfig() Config {
	return Config{
		ConsumePercent:    defaultConsumePercent,
		ResultDurationMs:  defaultResultDurationMs,
		TouchSlop:         defaultTouchSlop,
		MaxPullAngle:      defaultMaxPullAngle,
		SettleDuration:    defaultSettleDuration,
		FlingDeceleration: defaultFlingDeceleration,
		MinFlingVelocity:  defaultMinFlingVelocity,
		Mode:              ModePullBoth,
	}
}

// LoadConfig decodes TOML on top of DefaultConfig and validates the result.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.ConsumePercent < 0 || c.ConsumePercent > 1:
		return fmt.Errorf("invalid config: consume_percent %v not in [0, 1]", c.ConsumePercent)
	case c.ResultDurationMs < 0:
		return fmt.Errorf("invalid config: result_duration_ms %d is negative", c.ResultDurationMs)
	case c.TouchSlop < 0:
		return fmt.Errorf("invalid config: touch_slop %v is negative", c.TouchSlop)
	case c.MaxPullAngle <= 0 || c.MaxPullAngle > 90:
		return fmt.Errorf("invalid config: max_pull_angle %v not in (0, 90]", c.MaxPullAngle)
	case c.SettleDuration <= 0:
		return fmt.Errorf("invalid config: settle_duration %v must be positive", c.SettleDuration)
	case c.FlingDeceleration <= 0:
		return fmt.Errorf("invalid config: fling_deceleration %v must be positive", c.FlingDeceleration)
	case c.MinFlingVelocity < 0:
		return fmt.Errorf("invalid config: min_fling_velocity %v is negative", c.MinFlingVelocity)
	case c.Mode > ModePullDisabled:
		return fmt.Errorf("invalid config: unknown mode %d", c.Mode)
	}
	return nil
}
