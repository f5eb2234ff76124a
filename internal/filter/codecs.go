package filter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// MaxDecodedSize is the largest decompressed payload a filter will produce.
const MaxDecodedSize = 1 << 30

var errTooLarge = errors.New("decompressed data exceeds size limit")

// readAllLimited drains r, failing once more than MaxDecodedSize bytes are read.
func readAllLimited(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, MaxDecodedSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > MaxDecodedSize {
		return nil, errTooLarge
	}
	return out, nil
}

// GzipFilter implements gzip decompression.
type GzipFilter struct{}

// NewGzip creates a new gzip filter.
func NewGzip() *GzipFilter { return &GzipFilter{} }

func (f *GzipFilter) ID() ID { return Gzip }

func (f *GzipFilter) Decode(input []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer r.Close()

	output, err := readAllLimited(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	return output, nil
}

// zstdDecoderPool pools zstd decoders; they are designed to be reused.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(MaxDecodedSize),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

// ZstdFilter implements Zstandard decompression.
type ZstdFilter struct{}

// NewZstd creates a new zstd filter.
func NewZstd() *ZstdFilter { return &ZstdFilter{} }

func (f *ZstdFilter) ID() ID { return Zstd }

func (f *ZstdFilter) Decode(input []byte) ([]byte, error) {
	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	output, err := decoder.DecodeAll(input, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return output, nil
}

// LZ4Filter implements LZ4 frame decompression.
type LZ4Filter struct{}

// NewLZ4 creates a new LZ4 filter.
func NewLZ4() *LZ4Filter { return &LZ4Filter{} }

func (f *LZ4Filter) ID() ID { return LZ4 }

func (f *LZ4Filter) Decode(input []byte) ([]byte, error) {
	output, err := readAllLimited(lz4.NewReader(bytes.NewReader(input)))
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	return output, nil
}

// S2Filter implements S2 (and Snappy framed) stream decompression.
type S2Filter struct{}

// NewS2 creates a new S2 filter.
func NewS2() *S2Filter { return &S2Filter{} }

func (f *S2Filter) ID() ID { return S2 }

func (f *S2Filter) Decode(input []byte) ([]byte, error) {
	output, err := readAllLimited(s2.NewReader(bytes.NewReader(input)))
	if err != nil {
		return nil, fmt.Errorf("s2 decompress: %w", err)
	}
	return output, nil
}
