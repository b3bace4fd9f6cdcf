// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Command nbtdump parses an NBT file and prints its tree to stdout. It
// exists to demonstrate the nbt package; it is not part of the core codec.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/creachadair/nbt"
)

var formatFlag = flag.String("format", "auto", "compression framing: auto, gzip, zlib, raw")

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: nbtdump -format=auto|gzip|zlib|raw <file>")
		os.Exit(2)
	}

	format, err := parseFormat(*formatFlag)
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	tag, err := nbt.Parse(f, nbt.ParseOptions{Format: format})
	if err != nil {
		log.Fatalf("parse: %v", err)
	}

	printTag(tag, 0)
}

func parseFormat(s string) (nbt.Format, error) {
	switch s {
	case "auto":
		return nbt.FormatAuto, nil
	case "gzip":
		return nbt.FormatGzip, nil
	case "zlib":
		return nbt.FormatZlib, nil
	case "raw":
		return nbt.FormatRaw, nil
	default:
		return 0, fmt.Errorf("unknown -format %q", s)
	}
}

func printTag(t *nbt.Tag, indent int) {
	pad(indent)
	if name := t.Name(); len(name) > 0 {
		fmt.Printf("%s: ", name)
	}

	switch t.Type() {
	case nbt.TagEnd:
		fmt.Println("[end]")
	case nbt.TagByte:
		fmt.Println(t.Byte())
	case nbt.TagShort:
		fmt.Println(t.Short())
	case nbt.TagInt:
		fmt.Println(t.Int())
	case nbt.TagLong:
		fmt.Println(t.Long())
	case nbt.TagFloat:
		fmt.Println(t.Float())
	case nbt.TagDouble:
		fmt.Println(t.Double())
	case nbt.TagByteArray:
		fmt.Printf("[%d bytes]\n", len(t.ByteArray()))
	case nbt.TagString:
		fmt.Printf("%q\n", t.StringBytes())
	case nbt.TagList:
		fmt.Printf("%d entries of %s\n", t.Len(), t.ElemType())
		for _, el := range t.Elements() {
			printTag(el, indent+2)
		}
	case nbt.TagCompound:
		fmt.Printf("%d entries\n", t.Len())
		for _, child := range t.Children() {
			printTag(child, indent+2)
		}
	case nbt.TagIntArray:
		fmt.Printf("[%d ints]\n", len(t.IntArray()))
	case nbt.TagLongArray:
		fmt.Printf("[%d longs]\n", len(t.LongArray()))
	}
}

func pad(n int) {
	for i := 0; i < n; i++ {
		fmt.Print(" ")
	}
}
