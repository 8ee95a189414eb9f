// Package compress provides the compression codecs used by the hif
// benchmarking tools to report compressed chunk sizes. The container format
// itself is uncompressed; these codecs never touch the wire encoding.
package compress

import (
	"fmt"
	"sort"
)

// Codec compresses and decompresses whole chunk payloads.
//
// Implementations return newly allocated slices (or the input itself for the
// no-op codec) and never modify the input. All built-in codecs are safe for
// concurrent use.
type Codec interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

var builtinCodecs = map[string]Codec{
	"none": NewNoOpCompressor(),
	"zstd": NewZstdCompressor(),
	"s2":   NewS2Compressor(),
	"lz4":  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec by name ("none", "zstd", "s2", "lz4").
func GetCodec(name string) (Codec, error) {
	if codec, ok := builtinCodecs[name]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression codec: %s", name)
}

// Names returns the built-in codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtinCodecs))
	for name := range builtinCodecs {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
