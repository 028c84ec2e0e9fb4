// Package snapshot persists merged aggregate tables, so that the results of
// separate runs can be folded together later without rescanning their inputs.
//
// A snapshot is the magic "BRC1", a codec byte and a 16-byte run id, followed
// by a (possibly compressed) body: a uvarint entry count, then for each entry
// a uvarint key length, the key, a uvarint length and the serialized
// Accumulator. Entries are written in key order.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gofrs/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"golang.org/x/exp/slices"

	"github.com/go-sif/brc"
	"github.com/go-sif/brc/accumulators"
	"github.com/go-sif/brc/errors"
	"github.com/go-sif/brc/internal/table"
)

var magic = []byte("BRC1")

const headerLen = 4 + 1 + uuid.Size

// Codec identifies the compression applied to a snapshot body
type Codec byte

const (
	// None stores the body uncompressed
	None Codec = iota
	// LZ4 compresses the body with lz4, favouring speed
	LZ4
	// Zstd compresses the body with zstandard, favouring size
	Zstd
)

// ParseCodec translates a codec name ("none", "lz4" or "zstd") to a Codec
func ParseCodec(s string) (Codec, error) {
	switch s {
	case "none", "":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("%q is an unknown snapshot codec", s)
	}
}

// String returns the name of this Codec
func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("codec(%d)", byte(c))
	}
}

// Header describes a snapshot
type Header struct {
	Codec   Codec
	RunID   uuid.UUID
	Entries int
}

// Write serializes every entry of t to w
func Write(w io.Writer, t *table.Table, codec Codec, runID uuid.UUID) error {
	if codec > Zstd {
		return fmt.Errorf("Unable to write snapshot with %s", codec)
	}
	header := make([]byte, 0, headerLen)
	header = append(header, magic...)
	header = append(header, byte(codec))
	header = append(header, runID.Bytes()...)
	if _, err := w.Write(header); err != nil {
		return err
	}
	body, err := encodeBody(t)
	if err != nil {
		return err
	}
	switch codec {
	case LZ4:
		compressor := lz4.NewWriter(w)
		if _, err := compressor.Write(body); err != nil {
			return err
		}
		return compressor.Close()
	case Zstd:
		compressor, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		if _, err := compressor.Write(body); err != nil {
			compressor.Close()
			return err
		}
		return compressor.Close()
	default:
		_, err := w.Write(body)
		return err
	}
}

type keyed struct {
	key []byte
	acc brc.Accumulator
}

func encodeBody(t *table.Table) ([]byte, error) {
	entries := make([]keyed, 0, t.Len())
	size := binary.MaxVarintLen64
	t.Each(func(key []byte, m *accumulators.Measurement) {
		entries = append(entries, keyed{key, m})
		size += len(key) + 6*binary.MaxVarintLen64
	})
	slices.SortFunc(entries, func(a, b keyed) int {
		return bytes.Compare(a.key, b.key)
	})
	buf := make([]byte, 0, size)
	buf = binary.AppendUvarint(buf, uint64(len(entries)))
	for _, e := range entries {
		serialized, err := e.acc.ToBytes()
		if err != nil {
			return nil, err
		}
		buf = binary.AppendUvarint(buf, uint64(len(e.key)))
		buf = append(buf, e.key...)
		buf = binary.AppendUvarint(buf, uint64(len(serialized)))
		buf = append(buf, serialized...)
	}
	return buf, nil
}

// Read decodes a snapshot from r. The keys of the returned Table reference a
// buffer which the Table keeps alive.
func Read(r io.Reader) (*table.Table, Header, error) {
	var header Header
	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, header, errors.SnapshotError{Reason: fmt.Sprintf("header is truncated: %v", err)}
	}
	if !bytes.Equal(raw[:len(magic)], magic) {
		return nil, header, errors.SnapshotError{Reason: "not a snapshot"}
	}
	header.Codec = Codec(raw[len(magic)])
	runID, err := uuid.FromBytes(raw[len(magic)+1:])
	if err != nil {
		return nil, header, errors.SnapshotError{Reason: err.Error()}
	}
	header.RunID = runID

	var body []byte
	switch header.Codec {
	case None:
		body, err = io.ReadAll(r)
	case LZ4:
		body, err = io.ReadAll(lz4.NewReader(r))
	case Zstd:
		var decompressor *zstd.Decoder
		decompressor, err = zstd.NewReader(r)
		if err == nil {
			body, err = io.ReadAll(decompressor)
			decompressor.Close()
		}
	default:
		return nil, header, errors.SnapshotError{Reason: fmt.Sprintf("unknown codec %d", byte(header.Codec))}
	}
	if err != nil {
		return nil, header, errors.SnapshotError{Reason: fmt.Sprintf("unable to decompress %s body: %v", header.Codec, err)}
	}
	t, err := decodeBody(body)
	if err != nil {
		return nil, header, err
	}
	header.Entries = t.Len()
	return t, header, nil
}

func decodeBody(body []byte) (*table.Table, error) {
	count, n := binary.Uvarint(body)
	if n <= 0 {
		return nil, errors.SnapshotError{Reason: "entry count is truncated"}
	}
	off := n
	// every entry takes at least 7 bytes, which bounds the hint for corrupt counts
	hint := int(count)
	if maxEntries := (len(body) - off) / 7; count > uint64(maxEntries) {
		return nil, errors.SnapshotError{Reason: fmt.Sprintf("%d entries cannot fit in %d bytes", count, len(body)-off)}
	}
	t := table.New(hint)
	t.Retain(body)
	for i := 0; i < hint; i++ {
		keyLen, n := binary.Uvarint(body[off:])
		if n <= 0 || keyLen == 0 || keyLen > uint64(len(body)-off-n) {
			return nil, errors.SnapshotError{Reason: fmt.Sprintf("entry %d has an invalid key", i)}
		}
		off += n
		key := body[off : off+int(keyLen) : off+int(keyLen)]
		off += int(keyLen)
		accLen, n := binary.Uvarint(body[off:])
		if n <= 0 || accLen > uint64(len(body)-off-n) {
			return nil, errors.SnapshotError{Reason: fmt.Sprintf("entry %d (%q) is truncated", i, key)}
		}
		off += n
		acc, err := accumulators.Measurer().FromBytes(body[off : off+int(accLen)])
		if err != nil {
			return nil, errors.SnapshotError{Reason: fmt.Sprintf("entry %d (%q): %v", i, key, err)}
		}
		off += int(accLen)
		if err := t.UpsertAccumulator(key, acc); err != nil {
			return nil, errors.SnapshotError{Reason: fmt.Sprintf("entry %d (%q): %v", i, key, err)}
		}
	}
	if off != len(body) {
		return nil, errors.SnapshotError{Reason: fmt.Sprintf("%d trailing bytes", len(body)-off)}
	}
	return t, nil
}
