package app

import (
	"flag"
	"strconv"
)

// HUDWidth is the pixel width of the control panel attached to the right
// edge of the simulation view.
const HUDWidth = 220

// Config represents the command-line parameters for the application.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64
	Dims  string
	P     int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "existon", Scale: 6, TPS: 60, Seed: 1337, Dims: "120x80", P: 2}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.Dims, "dims", c.Dims, "grid extents joined by 'x', e.g. 120x80")
	fs.IntVar(&c.P, "p", c.P, "algebra order (2^p basis blades per cell)")
}

// SimOptions converts the flag values into a factory configuration map.
func (c *Config) SimOptions() map[string]string {
	return map[string]string{
		"dims": c.Dims,
		"p":    strconv.Itoa(c.P),
		"seed": strconv.FormatInt(c.Seed, 10),
	}
}
