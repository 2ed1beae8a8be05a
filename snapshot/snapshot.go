// Package snapshot persists Bloch basis sets.
//
// File layout (little endian):
//
//	magic       [4]byte  "TSNP"
//	version     uint16
//	compression uint8
//	codecLen    uint8
//	codec       [codecLen]byte
//	rawLen      uint64   uncompressed payload size
//	checksum    uint32   CRC32C of the uncompressed payload
//	dataLen     uint64
//	data        [dataLen]byte
//
// The payload is the codec encoding of the set: sector, statistics, every
// orbit with its coefficients, and the vanished configurations as a portable
// roaring64 bitmap.
package snapshot

import (
	"bufio"
	"bytes"
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/trispin/basis"
	"github.com/hupe1980/trispin/bloch"
	"github.com/hupe1980/trispin/codec"
	"github.com/hupe1980/trispin/internal/hash"
	"github.com/hupe1980/trispin/lattice"
)

const (
	// Version is the current snapshot format version.
	Version uint16 = 1

	// Extension is the file extension used by Name.
	Extension = ".snap"

	maxRawLen = 1 << 36
)

var magic = [4]byte{'T', 'S', 'N', 'P'}

var (
	// ErrCorrupt is returned when a snapshot fails validation.
	ErrCorrupt = errors.New("snapshot corrupt")

	// ErrUnknownCodec is returned when the header names an unregistered codec.
	ErrUnknownCodec = errors.New("unknown snapshot codec")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

// Name returns the blob name of the snapshot for sector, e.g.
// "bloch/nx3-ny4-kx1-ky0-nup6.snap".
func Name(sector bloch.Sector) string {
	return "bloch/" + sector.String() + Extension
}

// Option configures Encode.
type Option func(*options)

type options struct {
	codec       codec.Codec
	compression Compression
}

// WithCodec sets the payload codec. Default is codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression sets the payload compression. Default is zstd.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

type fileOrbit struct {
	Lead uint64    `json:"lead"`
	Decs []uint64  `json:"decs"`
	Re   []float64 `json:"re"`
	Im   []float64 `json:"im"`
}

type fileStats struct {
	Scanned          uint64 `json:"scanned"`
	Orbits           uint64 `json:"orbits"`
	Kept             uint64 `json:"kept"`
	Vanished         uint64 `json:"vanished"`
	DiscardedConfigs uint64 `json:"discarded_configs"`
}

type fileSet struct {
	Nx         int         `json:"nx"`
	Ny         int         `json:"ny"`
	Kx         int         `json:"kx"`
	Ky         int         `json:"ky"`
	Restricted bool        `json:"restricted"`
	Nup        int         `json:"nup"`
	Stats      fileStats   `json:"stats"`
	Orbits     []fileOrbit `json:"orbits"`
	Discarded  []byte      `json:"discarded"`
}

func toFile(set *bloch.BlochFuncSet) (*fileSet, error) {
	sec := set.Sector()
	st := set.Stats()
	f := &fileSet{
		Nx:         sec.Shape.Nx.Int(),
		Ny:         sec.Shape.Ny.Int(),
		Kx:         sec.Kx.Int(),
		Ky:         sec.Ky.Int(),
		Restricted: sec.Restricted,
		Nup:        sec.Nup.Int(),
		Stats: fileStats{
			Scanned:          st.Scanned,
			Orbits:           st.Orbits,
			Kept:             st.Kept,
			Vanished:         st.Vanished,
			DiscardedConfigs: st.DiscardedConfigs,
		},
		Orbits: make([]fileOrbit, 0, set.Len()),
	}

	for _, bf := range set.All() {
		decs := make([]basis.BinaryBasis, 0, len(bf.Decs))
		for dec := range bf.Decs {
			decs = append(decs, dec)
		}
		slices.SortFunc(decs, func(a, b basis.BinaryBasis) int { return cmp.Compare(a.Uint64(), b.Uint64()) })

		o := fileOrbit{
			Lead: bf.Lead.Uint64(),
			Decs: make([]uint64, len(decs)),
			Re:   make([]float64, len(decs)),
			Im:   make([]float64, len(decs)),
		}
		for i, dec := range decs {
			c := bf.Decs[dec]
			o.Decs[i], o.Re[i], o.Im[i] = dec.Uint64(), real(c), imag(c)
		}
		f.Orbits = append(f.Orbits, o)
	}

	disc, err := set.Discarded().ToBytes()
	if err != nil {
		return nil, err
	}
	f.Discarded = disc
	return f, nil
}

func fromFile(f *fileSet) (*bloch.BlochFuncSet, error) {
	shape, err := lattice.NewShape(f.Nx, f.Ny)
	if err != nil {
		return nil, err
	}
	kx, err := lattice.NewMomentum(f.Kx, shape.Nx)
	if err != nil {
		return nil, err
	}
	ky, err := lattice.NewMomentum(f.Ky, shape.Ny)
	if err != nil {
		return nil, err
	}
	sector := bloch.Sector{Shape: shape, Kx: kx, Ky: ky, Restricted: f.Restricted}
	if f.Restricted {
		if sector.Nup, err = lattice.NewFilling(f.Nup, shape); err != nil {
			return nil, err
		}
	}

	funcs := make([]*bloch.BlochFunc, 0, len(f.Orbits))
	for _, o := range f.Orbits {
		if len(o.Re) != len(o.Decs) || len(o.Im) != len(o.Decs) {
			return nil, fmt.Errorf("orbit %d: coefficient count mismatch", o.Lead)
		}
		decs := make(map[basis.BinaryBasis]complex128, len(o.Decs))
		for i, d := range o.Decs {
			decs[basis.New(d)] = complex(o.Re[i], o.Im[i])
		}
		funcs = append(funcs, &bloch.BlochFunc{Lead: basis.New(o.Lead), Decs: decs})
	}

	discarded := roaring64.New()
	if len(f.Discarded) > 0 {
		if _, err := discarded.ReadFrom(bytes.NewReader(f.Discarded)); err != nil {
			return nil, fmt.Errorf("discarded bitmap: %w", err)
		}
	}

	stats := bloch.Stats{
		Scanned:          f.Stats.Scanned,
		Orbits:           f.Stats.Orbits,
		Kept:             f.Stats.Kept,
		Vanished:         f.Stats.Vanished,
		DiscardedConfigs: f.Stats.DiscardedConfigs,
	}
	return bloch.Restore(sector, funcs, discarded, stats)
}

// Marshal encodes set into a snapshot.
func Marshal(set *bloch.BlochFuncSet, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, set, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a snapshot produced by Marshal or Encode.
func Unmarshal(data []byte) (*bloch.BlochFuncSet, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes set to w.
func Encode(w io.Writer, set *bloch.BlochFuncSet, opts ...Option) error {
	o := options{codec: codec.Default, compression: CompressionZstd}
	for _, opt := range opts {
		opt(&o)
	}

	name := o.codec.Name()
	if len(name) == 0 || len(name) > 255 {
		return fmt.Errorf("%w: invalid codec name %q", ErrUnknownCodec, name)
	}

	f, err := toFile(set)
	if err != nil {
		return err
	}
	raw, err := o.codec.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	data, used, err := compress(raw, o.compression)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	bw := bufio.NewWriter(w)
	hdr := make([]byte, 0, 32+len(name))
	hdr = append(hdr, magic[:]...)
	hdr = binary.LittleEndian.AppendUint16(hdr, Version)
	hdr = append(hdr, byte(used), byte(len(name)))
	hdr = append(hdr, name...)
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(len(raw)))
	hdr = binary.LittleEndian.AppendUint32(hdr, hash.CRC32C(raw))
	hdr = binary.LittleEndian.AppendUint64(hdr, uint64(len(data)))
	if _, err := bw.Write(hdr); err != nil {
		return err
	}
	if _, err := bw.Write(data); err != nil {
		return err
	}
	return bw.Flush()
}

// Decode reads a snapshot from r.
func Decode(r io.Reader) (*bloch.BlochFuncSet, error) {
	br := bufio.NewReader(r)

	var fixed [8]byte
	if _, err := io.ReadFull(br, fixed[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if !bytes.Equal(fixed[:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := binary.LittleEndian.Uint16(fixed[4:]); v != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	comp := Compression(fixed[6])

	name := make([]byte, fixed[7])
	if _, err := io.ReadFull(br, name); err != nil {
		return nil, fmt.Errorf("%w: codec name: %w", ErrCorrupt, err)
	}
	c, ok := codec.ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	var sizes [20]byte
	if _, err := io.ReadFull(br, sizes[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	rawLen := binary.LittleEndian.Uint64(sizes[0:])
	checksum := binary.LittleEndian.Uint32(sizes[8:])
	dataLen := binary.LittleEndian.Uint64(sizes[12:])
	if rawLen > maxRawLen || dataLen > maxRawLen {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrCorrupt, rawLen)
	}

	data := make([]byte, dataLen)
	if _, err := io.ReadFull(br, data); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrCorrupt, err)
	}
	raw, err := decompress(data, comp, rawLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if hash.CRC32C(raw) != checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	var f fileSet
	if err := c.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	set, err := fromFile(&f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return set, nil
}
