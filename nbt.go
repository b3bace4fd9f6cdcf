// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package nbt reads and writes the Named Binary Tag (NBT) format, the
// tagged, hierarchical binary serialization used by block-world game save
// files.
//
// A stream is parsed into a tree of *Tag values with Parse, and a tree is
// serialized back to bytes with Write. The stream may be gzip- or
// zlib-framed, or delivered raw; Parse and Write select the framing via a
// Format value.
package nbt

import (
	"fmt"
	"io"
)

// Format selects the compression framing of an NBT stream. The same
// encoding is used for both Parse and Write.
type Format int

// The defined framings. FormatAuto is valid only for Parse, where it
// sniffs the stream's first bytes; Write rejects it, since a writer has no
// stream to sniff.
const (
	FormatAuto Format = iota
	FormatGzip
	FormatZlib
	FormatRaw
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatGzip:
		return "gzip"
	case FormatZlib:
		return "zlib"
	case FormatRaw:
		return "raw"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseOptions configures Parse. The zero value sniffs the framing (the
// zero Format is FormatAuto) and decodes with a nil Allocator; gzip
// framing is not assumed.
type ParseOptions struct {
	// Format selects the framing to expect. FormatAuto sniffs the first
	// bytes of the stream (0x1F 0x8B -> gzip, 0x78 -> zlib, otherwise
	// raw).
	Format Format

	// Allocator, if non-nil, supplies backing storage for decoded names
	// and byte payloads. A nil Allocator uses make.
	Allocator Allocator
}

// Parse reads one NBT tree from r, decompressing according to opts.Format.
// The root is parsed permissively: convention calls for the root to be a
// Compound, but Parse does not enforce this.
//
// On any fault, Parse returns a nil Tag and a non-nil error; no partial
// tree survives the call (Go's garbage collector reclaims it once it goes
// out of scope, so there is nothing for the caller to free).
func Parse(r io.Reader, opts ParseOptions) (*Tag, error) {
	format := opts.Format
	if format == FormatAuto {
		sniffed, sr, err := sniffFormat(r)
		if err != nil {
			return nil, err
		}
		format, r = sniffed, sr
	}

	buf, err := readFrame(r, format)
	if err != nil {
		return nil, fmt.Errorf("nbt: %w", err)
	}

	cur := newCursor(buf)
	tag, err := decodeTag(cur, true, noOverride, opts.Allocator)
	if err != nil {
		return nil, fmt.Errorf("nbt: %w", err)
	}
	return tag, nil
}

// WriteOptions configures Write.
type WriteOptions struct {
	// Format selects the framing to emit. FormatAuto is invalid for
	// Write.
	Format Format
}

// Write serializes tag to w, compressing according to opts.Format.
//
// Write is not atomic: on a mid-stream fault, a prefix of bytes may
// already have reached w that is not a valid NBT stream. Callers that
// require atomicity should buffer to memory (e.g. a bytes.Buffer) and
// copy to the real destination only after Write returns nil.
func Write(w io.Writer, tag *Tag, opts WriteOptions) error {
	if opts.Format == FormatAuto {
		return fmt.Errorf("nbt: %w", ErrAutoFormat)
	}

	wr := newWriter(bufferSize)
	if err := encodeTag(wr, tag, true, true); err != nil {
		return fmt.Errorf("nbt: %w", err)
	}

	if err := writeFrame(w, opts.Format, wr.buf); err != nil {
		return fmt.Errorf("nbt: %w", err)
	}
	return nil
}
