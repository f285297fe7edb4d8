package chunker

// Defaults for an 8192 character context.
const (
	DefaultContext      = 8192
	DefaultBlockSize    = DefaultContext * 3 / 2
	DefaultMinBlockSize = DefaultContext / 2
	DefaultMaxLevel     = 3
)

// Config controls chunking behavior.
type Config struct {
	BlockSize    int // Target upper bound for a block, in bytes.
	MinBlockSize int // Blocks shorter than this keep absorbing chapters.
	MaxLevel     int // Deepest heading level that starts a new chapter.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		BlockSize:    DefaultBlockSize,
		MinBlockSize: DefaultMinBlockSize,
		MaxLevel:     DefaultMaxLevel,
	}
}

// ConfigForContext sizes blocks for a model context of n characters:
// one and a half contexts per block at most, half a context at least.
func ConfigForContext(n int) Config {
	if n <= 0 {
		return DefaultConfig()
	}
	return Config{
		BlockSize:    n * 3 / 2,
		MinBlockSize: n / 2,
		MaxLevel:     DefaultMaxLevel,
	}
}

func (c Config) withDefaults() Config {
	if c.BlockSize <= 0 {
		c.BlockSize = DefaultBlockSize
	}
	if c.MinBlockSize <= 0 {
		c.MinBlockSize = DefaultMinBlockSize
	}
	if c.MinBlockSize > c.BlockSize {
		c.MinBlockSize = c.BlockSize
	}
	if c.MaxLevel <= 0 {
		c.MaxLevel = DefaultMaxLevel
	}
	return c
}

// NeedsSplit reports whether text is too long to be handled as one block.
func (c Config) NeedsSplit(text string) bool {
	c = c.withDefaults()
	return len(text) > c.BlockSize+c.MinBlockSize
}

// Split breaks a Markdown document into heading-aligned blocks.
func Split(markdown string, cfg Config) []string {
	cfg = cfg.withDefaults()

	var texts []string
	for ch := range SegmentIntoChapters(SplitLines(markdown), cfg.MaxLevel) {
		texts = append(texts, ch.Text())
	}
	return GroupChaptersIntoBlocks(texts, cfg.BlockSize, cfg.MinBlockSize)
}
