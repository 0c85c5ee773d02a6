package snapshot

import "errors"

const (
	// MagicNumber identifies plearn parameter snapshot files (ASCII: "PLN0").
	MagicNumber = 0x504C4E30
	// Version is the current file format version (v1.0.0).
	Version = 0x00010000
)

// Compression selects the payload compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD compression (better ratio).
	CompressionZSTD Compression = 2
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrInvalidCompression = errors.New("unsupported compression")
	ErrChecksum           = errors.New("checksum mismatch")
)

// fileHeader is the fixed-size header at the start of every snapshot file.
type fileHeader struct {
	Magic            uint32
	Version          uint32
	Compression      uint8
	Padding          [3]byte
	UncompressedSize uint32
	StoredSize       uint32
	Checksum         uint32 // CRC32 (IEEE) of the stored payload
}
