package config

// Config holds the command line settings of a preview run.
type Config struct {
	InputPath    string // frames directory, PDF or "fixtures"
	OutputVideo  string
	ScenePath    string
	ScenarioPath string
	Width        int
	Height       int
	FPS          int
	Workers      int
	Duration     float64 // seconds, 0 = scenario duration
	VideoEncoder string
	Quality      int
	ShowStats    bool
	ProgressBar  bool // overlay the scroll position along the bottom edge
	Verbose      bool
	BuildVersion string
}

// Viewport returns the output size as floats for layout math.
func (c *Config) Viewport() (float64, float64) {
	return float64(c.Width), float64(c.Height)
}
