// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package nbt

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// bufferSize is the scratch chunk size used by the compression frame for
// both input and output.
const bufferSize = 32 * 1024

// gzip flag bits (RFC 1952 §2.3.1).
const (
	gzipFHCRC    = 1 << 1
	gzipFEXTRA   = 1 << 2
	gzipFNAME    = 1 << 3
	gzipFCOMMENT = 1 << 4
)

// sniffFormat inspects the first bytes of r to pick a framing, for
// FormatAuto on read: 0x1F 0x8B signals gzip, 0x78 signals zlib, anything
// else is assumed raw. It returns a reader that still sees those bytes.
func sniffFormat(r io.Reader) (Format, io.Reader, error) {
	br := bufio.NewReader(r)
	peek, err := br.Peek(2)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return 0, br, fmt.Errorf("sniff format: %w", err)
	}
	switch {
	case len(peek) >= 2 && peek[0] == 0x1F && peek[1] == 0x8B:
		return FormatGzip, br, nil
	case len(peek) >= 1 && peek[0] == 0x78:
		return FormatZlib, br, nil
	default:
		return FormatRaw, br, nil
	}
}

// readFrame decompresses (or passes through) source according to format,
// returning the full decompressed NBT byte stream as one contiguous
// buffer. Memory use is bounded by the uncompressed tree size, not the
// compressed size on the wire.
func readFrame(source io.Reader, format Format) ([]byte, error) {
	switch format {
	case FormatGzip:
		return readGzipFrame(source)
	case FormatZlib:
		return readZlibFrame(source)
	case FormatRaw:
		return readRawFrame(source)
	default:
		return nil, fmt.Errorf("read: invalid format %d", format)
	}
}

func readRawFrame(r io.Reader) ([]byte, error) {
	return readAllChunked(r)
}

func readGzipFrame(r io.Reader) ([]byte, error) {
	var header [10]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read gzip header: %w", ErrCompression)
	}
	if header[0] != 0x1F || header[1] != 0x8B {
		return nil, fmt.Errorf("bad gzip magic %02x%02x: %w", header[0], header[1], ErrCompression)
	}
	flg := header[3]

	// The FEXTRA field is skipped using its own 16-bit length prefix.
	if flg&gzipFEXTRA != 0 {
		var xlen [2]byte
		if _, err := io.ReadFull(r, xlen[:]); err != nil {
			return nil, fmt.Errorf("read gzip FEXTRA length: %w", ErrCompression)
		}
		if _, err := io.CopyN(io.Discard, r, int64(binary.LittleEndian.Uint16(xlen[:]))); err != nil {
			return nil, fmt.Errorf("skip gzip FEXTRA: %w", ErrCompression)
		}
	}
	if flg&gzipFNAME != 0 {
		if err := skipNulTerminated(r); err != nil {
			return nil, fmt.Errorf("skip gzip FNAME: %w", ErrCompression)
		}
	}
	if flg&gzipFCOMMENT != 0 {
		if err := skipNulTerminated(r); err != nil {
			return nil, fmt.Errorf("skip gzip FCOMMENT: %w", ErrCompression)
		}
	}
	if flg&gzipFHCRC != 0 {
		var fhcrc [2]byte
		if _, err := io.ReadFull(r, fhcrc[:]); err != nil {
			return nil, fmt.Errorf("read gzip FHCRC: %w", ErrCompression)
		}
	}

	fr := flate.NewReader(r)
	defer fr.Close()
	buf, err := readAllChunked(fr)
	if err != nil {
		return nil, fmt.Errorf("inflate gzip payload: %v: %w", err, ErrCompression)
	}
	// Trailer CRC32/ISIZE checking is intentionally not performed.
	return buf, nil
}

func skipNulTerminated(r io.Reader) error {
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		if b[0] == 0 {
			return nil
		}
	}
}

func readZlibFrame(r io.Reader) ([]byte, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", ErrCompression)
	}
	defer zr.Close()
	buf, err := readAllChunked(zr)
	if err != nil {
		return nil, fmt.Errorf("inflate zlib payload: %v: %w", err, ErrCompression)
	}
	return buf, nil
}

// readAllChunked accumulates r into a growing in-memory buffer, reading in
// bufferSize chunks into a geometrically-growing accumulator.
func readAllChunked(r io.Reader) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, bufferSize)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// writeFrame compresses (or passes through) payload to sink according to
// format.
func writeFrame(sink io.Writer, format Format, payload []byte) error {
	switch format {
	case FormatGzip:
		return writeGzipFrame(sink, payload)
	case FormatZlib:
		return writeZlibFrame(sink, payload)
	case FormatRaw:
		return writeAll(sink, payload)
	case FormatAuto:
		return ErrAutoFormat
	default:
		return fmt.Errorf("write: invalid format %d", format)
	}
}

func writeGzipFrame(sink io.Writer, payload []byte) error {
	// MTIME=0, XFL=2 (max compression), OS=255 (unknown), no optional
	// fields.
	header := [10]byte{0x1F, 0x8B, 8, 0, 0, 0, 0, 0, 2, 255}
	if err := writeAll(sink, header[:]); err != nil {
		return fmt.Errorf("write gzip header: %w", err)
	}

	fw, err := flate.NewWriter(sink, flate.BestCompression)
	if err != nil {
		return fmt.Errorf("open deflate stream: %w", ErrCompression)
	}

	crc := crc32.NewIEEE()
	// Emitting state: feed bufferSize chunks to the deflator.
	for i := 0; i < len(payload); i += bufferSize {
		end := i + bufferSize
		if end > len(payload) {
			end = len(payload)
		}
		chunk := payload[i:end]
		if _, err := fw.Write(chunk); err != nil {
			return fmt.Errorf("deflate: %w", ErrCompression)
		}
		crc.Write(chunk)
	}
	// Flushing -> Done: drain the deflator with a final flush.
	if err := fw.Close(); err != nil {
		return fmt.Errorf("finish deflate stream: %w", ErrCompression)
	}

	// CRC32 and ISIZE trailer, both exactly 4 little-endian bytes, never
	// a platform-width field.
	var trailer [8]byte
	binary.LittleEndian.PutUint32(trailer[0:4], crc.Sum32())
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(payload)))
	if err := writeAll(sink, trailer[:]); err != nil {
		return fmt.Errorf("write gzip trailer: %w", err)
	}
	return nil
}

func writeZlibFrame(sink io.Writer, payload []byte) error {
	zw, err := zlib.NewWriterLevel(sink, zlib.BestCompression)
	if err != nil {
		return fmt.Errorf("open zlib stream: %w", ErrCompression)
	}
	for i := 0; i < len(payload); i += bufferSize {
		end := i + bufferSize
		if end > len(payload) {
			end = len(payload)
		}
		if _, err := zw.Write(payload[i:end]); err != nil {
			return fmt.Errorf("deflate: %w", ErrCompression)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish zlib stream: %w", ErrCompression)
	}
	return nil
}

// writeAll retries partial writes until data is exhausted or the sink
// makes no progress. A conforming io.Writer either writes everything or
// returns an error, so n == 0 with a nil error is the one case this loop
// treats as a fault.
func writeAll(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrShortWrite
		}
		data = data[n:]
	}
	return nil
}
