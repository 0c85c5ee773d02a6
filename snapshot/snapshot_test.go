package snapshot

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParameters() *Parameters {
	return &Parameters{
		Facts: map[int]float64{0: 0.7, 3: 0.25},
		Disjunctions: map[int][]float64{
			1: {0.5, 0.3, 0.2},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		compression Compression
	}{
		{"none", CompressionNone},
		{"lz4", CompressionLZ4},
		{"zstd", CompressionZSTD},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Save(&buf, testParameters(), WithCompression(tt.compression)))

			got, err := Load(&buf)
			require.NoError(t, err)
			assert.Equal(t, testParameters(), got)
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.pln")

	require.NoError(t, SaveFile(path, testParameters()))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testParameters(), got)
}

func TestLoadRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, testParameters()))

	data := buf.Bytes()
	binary.LittleEndian.PutUint32(data[0:], 0xDEADBEEF)

	_, err := Load(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestLoadRejectsBadVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, testParameters()))

	data := buf.Bytes()
	binary.LittleEndian.PutUint32(data[4:], 0x7FFFFFFF)

	_, err := Load(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrInvalidVersion)
}

func TestLoadDetectsCorruption(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, testParameters(), WithCompression(CompressionNone)))

	data := buf.Bytes()
	data[len(data)-1] ^= 0xFF

	_, err := Load(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestSaveRejectsUnknownCompression(t *testing.T) {
	var buf bytes.Buffer
	err := Save(&buf, testParameters(), WithCompression(Compression(42)))
	assert.ErrorIs(t, err, ErrInvalidCompression)
}

func TestLoadTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Save(&buf, testParameters()))

	data := buf.Bytes()
	_, err := Load(bytes.NewReader(data[:len(data)-4]))
	assert.Error(t, err)
}

func TestFromResultCopies(t *testing.T) {
	facts := map[int]float64{0: 0.5}
	disjs := map[int][]float64{1: {0.4, 0.6}}

	p := FromResult(facts, disjs)

	disjs[1][0] = 0.99
	assert.Equal(t, 0.4, p.Disjunctions[1][0])
	assert.Equal(t, 0.5, p.Facts[0])
}
