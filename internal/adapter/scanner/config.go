package scanner

const (
	DefaultMaxMethodLength = 30
	DefaultMaxLineLength   = 120
)

// Config holds the style thresholds. It is passed by value and never
// modified by the scanner.
type Config struct {
	MaxMethodLength int
	MaxLineLength   int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MaxMethodLength: DefaultMaxMethodLength,
		MaxLineLength:   DefaultMaxLineLength,
	}
}

// normalize replaces non-positive thresholds with defaults.
func (c Config) normalize() Config {
	if c.MaxMethodLength <= 0 {
		c.MaxMethodLength = DefaultMaxMethodLength
	}
	if c.MaxLineLength <= 0 {
		c.MaxLineLength = DefaultMaxLineLength
	}
	return c
}
