// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package nbt

import "errors"

// Sentinel errors identifying the fault kinds a parse or write can surface.
// Use errors.Is to test for these; call sites wrap them with fmt.Errorf to
// add position or value context.
var (
	// ErrInvalidTagType means a byte outside 0..12 was read where a tag
	// type was expected.
	ErrInvalidTagType = errors.New("nbt: invalid tag type")

	// ErrTruncatedStream means the decoder ran past the end of the
	// decompressed buffer.
	ErrTruncatedStream = errors.New("nbt: truncated stream")

	// ErrMalformedLength means a length prefix was negative, or claimed
	// more bytes than remain in the buffer.
	ErrMalformedLength = errors.New("nbt: malformed length prefix")

	// ErrCompression means the inflate/deflate engine reported a
	// non-recoverable status.
	ErrCompression = errors.New("nbt: compression error")

	// ErrShortWrite means a sink accepted no bytes of a write without
	// reporting an error, violating the io.Writer contract. A write that
	// makes partial progress is retried with the remaining bytes.
	ErrShortWrite = errors.New("nbt: short write")

	// ErrAutoFormat means FormatAuto was passed to Write, which has no
	// stream to sniff a format from.
	ErrAutoFormat = errors.New("nbt: cannot write with FormatAuto")
)
