package compress

// ZstdCompressor compresses with Zstandard, the best-ratio codec for
// identifier-heavy chunk payloads. The implementation is selected at build
// time: cgo-backed (gozstd) when cgo is enabled, pure Go when it is not.
type ZstdCompressor struct{}

var _ Codec = ZstdCompressor{}

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
