// SPDX-License-Identifier: EPL-2.0

package separator

import "fmt"

// Config holds the analysis parameters. The zero value is not usable, start
// from DefaultConfig.
type Config struct {
	// FrameSize is the FFT length in samples.
	FrameSize int
	// HopSize is the distance between frames in samples.
	HopSize int

	// Width is the smallest frame distance allowed between neighbours.
	Width int
	// Radius is the largest frame distance searched, 0 searches everything.
	Radius int
	// Neighbors is how many similar frames are aggregated, 0 for automatic.
	Neighbors int

	MarginInstrumental float64
	MarginVocal        float64
	Power              float64
}

func DefaultConfig() Config {
	return Config{
		FrameSize:          2048,
		HopSize:            512,
		Width:              2,
		Radius:             256,
		Neighbors:          0,
		MarginInstrumental: 2,
		MarginVocal:        10,
		Power:              2,
	}
}

func (c Config) Validate() error {
	switch {
	case c.FrameSize < 2:
		return fmt.Errorf("%w: frame size %d", ErrInvalidConfig, c.FrameSize)
	case c.HopSize <= 0 || c.HopSize >= c.FrameSize:
		return fmt.Errorf("%w: hop size %d for frame size %d", ErrInvalidConfig, c.HopSize, c.FrameSize)
	case c.Width < 1:
		return fmt.Errorf("%w: width %d", ErrInvalidConfig, c.Width)
	case c.Radius < 0:
		return fmt.Errorf("%w: radius %d", ErrInvalidConfig, c.Radius)
	case c.Radius > 0 && c.Radius < c.Width:
		return fmt.Errorf("%w: radius %d is smaller than width %d", ErrInvalidConfig, c.Radius, c.Width)
	case c.Neighbors < 0:
		return fmt.Errorf("%w: neighbors %d", ErrInvalidConfig, c.Neighbors)
	case c.MarginInstrumental < 0 || c.MarginVocal < 0:
		return fmt.Errorf("%w: margins %v and %v", ErrInvalidConfig, c.MarginInstrumental, c.MarginVocal)
	case c.Power <= 0:
		return fmt.Errorf("%w: power %v", ErrInvalidConfig, c.Power)
	}

	return nil
}
