// ABOUTME: Binary persistence for the flat index
// ABOUTME: Little-endian blob with magic header, dimension, count, f32 payload
package index

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/harper/assessment-recommender/internal/util"
)

// ErrCorrupt is returned when a blob fails header or length validation.
var ErrCorrupt = errors.New("index: corrupt artifact")

const (
	blobMagic   = "ASIX"
	blobVersion = uint32(1)
	headerSize  = 16
)

// MarshalBinary encodes the index as magic, version, dim, count, then
// count*dim little-endian float32 values in position order.
func (f *Flat) MarshalBinary() ([]byte, error) {
	if f == nil || len(f.vecs) == 0 {
		return nil, ErrNotBuilt
	}
	out := make([]byte, 0, headerSize+4*f.dim*len(f.vecs))
	out = append(out, blobMagic...)
	out = binary.LittleEndian.AppendUint32(out, blobVersion)
	out = binary.LittleEndian.AppendUint32(out, uint32(f.dim))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(f.vecs)))
	for _, v := range f.vecs {
		for _, x := range v {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(x))
		}
	}
	return out, nil
}

// UnmarshalBinary restores an index from MarshalBinary output. The payload
// length must match the header exactly; anything else is ErrCorrupt.
func (f *Flat) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("%w: blob is %d bytes, shorter than header", ErrCorrupt, len(data))
	}
	if string(data[:4]) != blobMagic {
		return fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[:4])
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != blobVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorrupt, v)
	}
	dim := int(binary.LittleEndian.Uint32(data[8:12]))
	n := int(binary.LittleEndian.Uint32(data[12:16]))
	if dim <= 0 || n <= 0 {
		return fmt.Errorf("%w: invalid header dim=%d count=%d", ErrCorrupt, dim, n)
	}
	payload := data[headerSize:]
	if len(payload) != 4*dim*n {
		return fmt.Errorf("%w: payload is %d bytes, want %d", ErrCorrupt, len(payload), 4*dim*n)
	}

	vecs := make([][]float32, n)
	off := 0
	for i := 0; i < n; i++ {
		vec := make([]float32, dim)
		for j := 0; j < dim; j++ {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(payload[off : off+4]))
			off += 4
		}
		vecs[i] = vec
	}
	f.dim = dim
	f.vecs = vecs
	return nil
}

// WriteFile persists the blob atomically via temp file and rename.
func (f *Flat) WriteFile(path string) error {
	data, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, data)
}

// ReadFile loads a blob written by WriteFile.
func ReadFile(path string) (*Flat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading index blob: %w", err)
	}
	var f Flat
	if err := f.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &f, nil
}
