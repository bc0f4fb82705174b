package oram

import "errors"

// DummyBlockID marks a bucket slot that holds no real block.
const DummyBlockID int64 = -1

var (
	ErrInvalidConfig   = errors.New("invalid ORAM configuration")
	ErrUnknownBlock    = errors.New("unknown block id")
	ErrDuplicateBlock  = errors.New("block id registered twice")
	ErrInvalidDataSize = errors.New("data size doesn't match block size")
	ErrLeafOutOfRange  = errors.New("leaf index out of range")
	ErrBucketOverflow  = errors.New("bucket assignment exceeds capacity")
	ErrCorrupted       = errors.New("internal consistency fault")
)

// Config holds the store parameters fixed at setup time.
type Config struct {
	NumLayers  int // L: levels in the bucket tree
	BucketSize int // Z: block slots per bucket
	BlockSize  int // payload bytes per block
	StashLimit int // stash size above which accesses raise an alarm
}

// Validate checks the configuration and applies defaults.
// Returns a copy of the config with defaults applied.
func (c Config) Validate() (Config, error) {
	if c.NumLayers < 1 || c.BucketSize < 1 {
		return c, ErrInvalidConfig
	}
	if c.BlockSize == 0 {
		c.BlockSize = 8
	}
	if c.BlockSize < 0 {
		return c, ErrInvalidConfig
	}
	if c.StashLimit == 0 {
		c.StashLimit = 4 * c.NumLayers
	}
	return c, nil
}

// NumLeaves returns the number of leaves, 2^(L-1).
func (c Config) NumLeaves() int {
	return 1 << (c.NumLayers - 1)
}

// NumBuckets returns the total bucket count, 2^L - 1.
func (c Config) NumBuckets() int {
	return (1 << c.NumLayers) - 1
}
