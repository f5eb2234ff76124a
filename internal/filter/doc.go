// Package filter decompresses dataset files before they are parsed.
//
// JSON-stat documents are frequently distributed compressed. A filter
// undoes one compression layer; a [Pipeline] undoes several, last layer
// first, the same way the layers were stacked when the file was written.
//
// # Supported Filters
//
//   - Gzip: gzip streams via klauspost/compress/gzip
//   - Zstd: Zstandard frames via a pooled klauspost/compress/zstd decoder
//   - LZ4: LZ4 frames via pierrec/lz4
//   - S2: S2 and framed Snappy streams via klauspost/compress/s2
//
// # Detection
//
// [FromExtension] picks a filter from a file suffix such as ".json.gz".
// [Detect] recognises a filter from the stream signature, and [Sniff]
// peels off every recognised layer until plain data remains:
//
//	data, applied, err := filter.Sniff(raw)
//
// Every filter refuses to produce more than [MaxDecodedSize] bytes.
//
// # Key Types
//
//   - [Filter]: interface implemented by all filters (ID and Decode methods)
//   - [Pipeline]: manages a sequence of filters for decoding
//   - [ID]: filter identifier
package filter
