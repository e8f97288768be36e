package loop

import (
	"time"

	"github.com/charmbracelet/log"
)

// FPSMeter counts frames and logs the rate about once a second.
type FPSMeter struct {
	logger *log.Logger
	name   string
	frames int
	since  time.Time
}

// NewFPSMeter returns a meter logging under name. A nil logger disables it.
func NewFPSMeter(logger *log.Logger, name string, now time.Time) *FPSMeter {
	return &FPSMeter{logger: logger, name: name, since: now}
}

// Tick records one frame at now and returns the rate when a report was due.
func (m *FPSMeter) Tick(now time.Time) (fps float64, reported bool) {
	if m == nil {
		return 0, false
	}
	m.frames++
	elapsed := now.Sub(m.since)
	if elapsed < time.Second {
		return 0, false
	}
	fps = float64(m.frames) / elapsed.Seconds()
	if m.logger != nil {
		m.logger.Info("fps", "loop", m.name, "fps", int(fps+0.5))
	}
	m.frames = 0
	m.since = now
	return fps, true
}
