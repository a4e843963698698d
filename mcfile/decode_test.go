// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mcfile

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalzilio/ruddmc"
)

// countingEngine keeps track of the references taken by the decoder.
type countingEngine struct {
	*ruddmc.BDD
	refs int
}

func (c *countingEngine) AddRef(n ruddmc.Node) ruddmc.Node {
	c.refs++
	return c.BDD.AddRef(n)
}

func (c *countingEngine) DelRef(n ruddmc.Node) ruddmc.Node {
	c.refs--
	return c.BDD.DelRef(n)
}

// tinySystem returns a system with two components, of 1 and 2 bits. The
// first group flips the bit of component 0; the second one resets component 1.
func tinySystem(t *testing.T, bdd *ruddmc.BDD) *System {
	t.Helper()
	statebits := []int{1, 2}
	s := &System{
		VectorLength: 2,
		StateBits:    statebits,
		TotalBits:    3,
		Initial:      bdd.And(bdd.NIthvar(0), bdd.NIthvar(2), bdd.NIthvar(4)),
		Domain:       bdd.Makeset(PresentVariables(3)),
		Groups: []Group{
			{Read: []int{0}, Write: []int{0}, Relation: bdd.Apply(bdd.Ithvar(0), bdd.Ithvar(1), ruddmc.OPxor)},
			{Read: []int{}, Write: []int{1}, Relation: bdd.And(bdd.NIthvar(3), bdd.NIthvar(5))},
		},
	}
	for k := range s.Groups {
		g := &s.Groups[k]
		g.Projection = Merge(g.Read, g.Write)
		g.Variables = Interleave(statebits, g.Projection)
		g.Domain = bdd.Makeset(g.Variables)
	}
	require.False(t, bdd.Errored(), bdd.Error())
	return s
}

func encodeTiny(t *testing.T, opts ...Option) []byte {
	t.Helper()
	bdd, err := ruddmc.New(6)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, bdd, tinySystem(t, bdd), opts...))
	return buf.Bytes()
}

func TestDecodeRoundTrip(t *testing.T) {
	var roundtripTests = []struct {
		name string
		opts []Option
	}{
		{"default", nil},
		{"split", []Option{GroupLayout(LayoutSplit)}},
		{"big endian", []Option{Order(binary.BigEndian)}},
		{"split little endian", []Option{GroupLayout(LayoutSplit), Order(binary.LittleEndian)}},
	}
	for _, tt := range roundtripTests {
		t.Run(tt.name, func(t *testing.T) {
			data := encodeTiny(t, tt.opts...)
			bdd, err := ruddmc.New(1)
			require.NoError(t, err)
			e := &countingEngine{BDD: bdd}
			s, err := Decode(bytes.NewReader(data), e, tt.opts...)
			require.NoError(t, err)

			assert.Equal(t, 6, bdd.Varnum(), "number of variables should grow to 2*TotalBits")
			assert.Equal(t, 2, s.VectorLength)
			assert.Equal(t, []int{1, 2}, s.StateBits)
			assert.Equal(t, 3, s.TotalBits)
			assert.Equal(t, []int{0, 2, 4}, bdd.Scanset(s.Domain))
			assert.Equal(t, 3, bdd.Nodecount(s.Initial))
			assert.Equal(t, int64(1), bdd.Satcountset(s.Initial, s.Domain).Int64())

			require.Len(t, s.Groups, 2)
			assert.Equal(t, []int{0}, s.Groups[0].Projection)
			assert.Equal(t, []int{0, 1}, s.Groups[0].Variables)
			assert.Equal(t, []int{0, 1}, bdd.Scanset(s.Groups[0].Domain))
			assert.True(t, bdd.Equal(s.Groups[0].Relation, bdd.Apply(bdd.Ithvar(0), bdd.Ithvar(1), ruddmc.OPxor)))
			assert.Equal(t, []int{}, s.Groups[1].Read)
			assert.Equal(t, []int{1}, s.Groups[1].Projection)
			assert.Equal(t, []int{2, 3, 4, 5}, s.Groups[1].Variables)
			assert.True(t, bdd.Equal(s.Groups[1].Relation, bdd.And(bdd.NIthvar(3), bdd.NIthvar(5))))
			assert.Len(t, s.Relations(), 2)
			assert.Len(t, s.Domains(), 2)

			// initial states, global domain, and two nodes per group
			assert.Equal(t, 6, e.refs)
			s.Release(e)
			assert.Equal(t, 0, e.refs)
		})
	}
}

// TestDecodeTruncated checks that every strict prefix of a valid file is
// rejected, without leaking references.
func TestDecodeTruncated(t *testing.T) {
	for _, layout := range []Layout{LayoutInterleaved, LayoutSplit} {
		data := encodeTiny(t, GroupLayout(layout))
		for size := 0; size < len(data); size++ {
			bdd, _ := ruddmc.New(6)
			e := &countingEngine{BDD: bdd}
			s, err := Decode(bytes.NewReader(data[:size]), e, GroupLayout(layout))
			require.Error(t, err, "%s layout, prefix of %d bytes", layout, size)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrTruncated, "%s layout, prefix of %d bytes", layout, size)
			var ferr *FormatError
			assert.True(t, errors.As(err, &ferr))
			assert.Equal(t, 0, e.refs, "references leaked for a prefix of %d bytes", size)
		}
	}
}

// patch replaces the int32 at index k of data.
func patch(data []byte, k int, v int32) []byte {
	res := append([]byte{}, data...)
	binary.NativeEndian.PutUint32(res[4*k:], uint32(v))
	return res
}

func TestDecodeMarker(t *testing.T) {
	// vector length, two state bits, action bits, then the marker
	data := patch(encodeTiny(t), 4, 7)
	bdd, _ := ruddmc.New(6)
	_, err := Decode(bytes.NewReader(data), bdd)
	require.ErrorIs(t, err, ErrMarker)
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, StageInitial, ferr.Stage)
	assert.Equal(t, -1, ferr.Group)
	assert.Equal(t, "marker", ferr.Field)
}

func TestDecodeSizes(t *testing.T) {
	data := encodeTiny(t)
	var sizeTests = []struct {
		name  string
		data  []byte
		opts  []Option
		field string
	}{
		{"negative vector length", patch(data, 0, -2), nil, "vector length"},
		{"vector too long", data, []Option{MaxVectorLength(1)}, "vector length"},
		{"too many bits", data, []Option{MaxStateBits(1)}, "state bits of component 1"},
		{"negative state bits", patch(data, 1, -1), nil, "state bits of component 0"},
		{"too many groups", data, []Option{MaxGroups(1)}, "number of groups"},
	}
	for _, tt := range sizeTests {
		bdd, _ := ruddmc.New(6)
		e := &countingEngine{BDD: bdd}
		_, err := Decode(bytes.NewReader(tt.data), e, tt.opts...)
		require.ErrorIs(t, err, ErrSize, tt.name)
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr, tt.name)
		assert.Equal(t, tt.field, ferr.Field, tt.name)
		assert.Equal(t, 0, e.refs, tt.name)
	}
}

func TestDecodeProjection(t *testing.T) {
	bdd, _ := ruddmc.New(6)
	s := tinySystem(t, bdd)
	s.Groups[1].Write = []int{1, 0}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, bdd, s))

	dst, _ := ruddmc.New(6)
	e := &countingEngine{BDD: dst}
	_, err := Decode(bytes.NewReader(buf.Bytes()), e)
	require.ErrorIs(t, err, ErrProjection)
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, StageGroups, ferr.Stage)
	assert.Equal(t, 1, ferr.Group)
	assert.Equal(t, "write projection", ferr.Field)
	assert.Equal(t, 0, e.refs)
}

func TestDecodeWrongLayout(t *testing.T) {
	data := encodeTiny(t, GroupLayout(LayoutSplit))
	bdd, _ := ruddmc.New(6)
	e := &countingEngine{BDD: bdd}
	s, err := Decode(bytes.NewReader(data), e, GroupLayout(LayoutInterleaved))
	assert.Error(t, err)
	assert.Nil(t, s)
	assert.Equal(t, 0, e.refs)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.bdd")
	data := encodeTiny(t)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	bdd, _ := ruddmc.New(6)
	s, err := ReadFile(path, bdd)
	require.NoError(t, err)
	assert.Len(t, s.Groups, 2)

	require.NoError(t, os.WriteFile(path, data[:10], 0o644))
	_, err = ReadFile(path, bdd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "header")

	_, err = ReadFile(filepath.Join(dir, "missing.bdd"), bdd)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatErrorMessage(t *testing.T) {
	err := &FormatError{Path: "model.bdd", Stage: StageRelations, Group: 3, Field: "relation", Err: ErrTruncated}
	assert.Equal(t, "model.bdd: transition relations, group 3, relation: unexpected end of file", err.Error())
	err = &FormatError{Stage: StageHeader, Group: -1, Err: ErrSize}
	assert.Equal(t, "mcfile: header: invalid size", err.Error())
}
