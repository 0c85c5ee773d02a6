// Package snapshot persists learned parameters in a self-describing binary
// format: a fixed header carrying magic, version, compression and a CRC32
// checksum, followed by a JSON payload that may be LZ4- or ZSTD-compressed.
//
// Snapshots are a durable complement to publishing: publishing writes
// converged values back into the externally owned program representation,
// while a snapshot captures the same values as a standalone artifact that
// can seed a later program or be compared across learning runs.
package snapshot

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Parameters is the persisted form of a learning result: learned values
// keyed by their position in the program's source collections.
type Parameters struct {
	Facts        map[int]float64   `json:"facts,omitempty"`
	Disjunctions map[int][]float64 `json:"disjunctions,omitempty"`
}

type options struct {
	compression Compression
}

// Option configures snapshot writing.
type Option func(*options)

// WithCompression selects the payload compression algorithm.
//
// Default: CompressionZSTD.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// Save writes the parameters to w.
func Save(w io.Writer, p *Parameters, opts ...Option) error {
	o := options{compression: CompressionZSTD}
	for _, opt := range opts {
		opt(&o)
	}

	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode parameters: %w", err)
	}

	stored, compression, err := compressPayload(payload, o.compression)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}

	header := fileHeader{
		Magic:            MagicNumber,
		Version:          Version,
		Compression:      uint8(compression),
		UncompressedSize: uint32(len(payload)),
		StoredSize:       uint32(len(stored)),
		Checksum:         crc32.ChecksumIEEE(stored),
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := w.Write(stored); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}

	return nil
}

// Load reads parameters previously written by Save.
func Load(r io.Reader) (*Parameters, error) {
	var header fileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version {
		return nil, ErrInvalidVersion
	}

	stored := make([]byte, header.StoredSize)
	if _, err := io.ReadFull(r, stored); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if crc32.ChecksumIEEE(stored) != header.Checksum {
		return nil, ErrChecksum
	}

	payload, err := decompressPayload(stored, Compression(header.Compression), header.UncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}

	var p Parameters
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode parameters: %w", err)
	}
	return &p, nil
}

// SaveFile writes the parameters to a file, replacing any existing content.
func SaveFile(path string, p *Parameters, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Save(f, p, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads parameters from a file written by SaveFile.
func LoadFile(path string) (*Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// compressPayload compresses the payload with the requested algorithm.
// Incompressible LZ4 payloads fall back to uncompressed storage; the
// returned Compression reflects what was actually stored.
func compressPayload(payload []byte, c Compression) ([]byte, Compression, error) {
	switch c {
	case CompressionNone:
		return payload, CompressionNone, nil

	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, buf, nil)
		if err != nil {
			return nil, 0, err
		}
		if n == 0 {
			// Incompressible.
			return payload, CompressionNone, nil
		}
		return buf[:n], CompressionLZ4, nil

	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, 0, err
		}
		defer enc.Close()
		return enc.EncodeAll(payload, nil), CompressionZSTD, nil

	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidCompression, c)
	}
}

func decompressPayload(stored []byte, c Compression, uncompressedSize uint32) ([]byte, error) {
	switch c {
	case CompressionNone:
		return stored, nil

	case CompressionLZ4:
		payload := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(stored, payload)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("decompressed size %d, want %d", n, uncompressedSize)
		}
		return payload, nil

	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		payload, err := dec.DecodeAll(stored, nil)
		if err != nil {
			return nil, err
		}
		if uint32(len(payload)) != uncompressedSize {
			return nil, fmt.Errorf("decompressed size %d, want %d", len(payload), uncompressedSize)
		}
		return payload, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidCompression, c)
	}
}

// FromResult converts a learning result into persistable parameters.
func FromResult(facts map[int]float64, disjunctions map[int][]float64) *Parameters {
	p := &Parameters{
		Facts:        make(map[int]float64, len(facts)),
		Disjunctions: make(map[int][]float64, len(disjunctions)),
	}
	for i, v := range facts {
		p.Facts[i] = v
	}
	for i, probs := range disjunctions {
		cp := make([]float64, len(probs))
		copy(cp, probs)
		p.Disjunctions[i] = cp
	}
	return p
}
