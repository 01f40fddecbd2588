// SPDX-License-Identifier: MIT

package matrix

import (
	"encoding/binary"
	"math"

	"github.com/cockroachdb/errors"
)

// blobMagic prefixes every encoded matrix so foreign files are rejected early.
var blobMagic = [4]byte{'L', 'V', 'M', '1'}

const blobHeaderLen = 4 + 8 + 8

// MarshalBinary encodes m as: magic, rows (uint64 LE), cols (uint64 LE),
// then rows*cols float64 values (LE, row-major).
func (m *Dense) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	buf := make([]byte, blobHeaderLen+8*len(m.data))
	copy(buf, blobMagic[:])
	binary.LittleEndian.PutUint64(buf[4:], uint64(m.r))
	binary.LittleEndian.PutUint64(buf[12:], uint64(m.c))
	off := blobHeaderLen
	for _, v := range m.data {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
		off += 8
	}

	return buf, nil
}

// UnmarshalBinary decodes a payload produced by MarshalBinary into m.
func (m *Dense) UnmarshalBinary(data []byte) error {
	if len(data) < blobHeaderLen || [4]byte(data[:4]) != blobMagic {
		return errors.Wrap(ErrCorruptBlob, "header")
	}
	r := binary.LittleEndian.Uint64(data[4:])
	c := binary.LittleEndian.Uint64(data[12:])
	payload := data[blobHeaderLen:]
	if r > math.MaxInt32 || c > math.MaxInt32 || uint64(len(payload)) != 8*r*c {
		return errors.Wrapf(ErrCorruptBlob, "shape %dx%d with %d payload bytes", r, c, len(payload))
	}
	vals := make([]float64, r*c)
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[8*i:]))
	}
	m.r, m.c, m.data = int(r), int(c), vals

	return nil
}
