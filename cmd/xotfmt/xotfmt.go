// The xotfmt command parses an XML document, optionally repairs its
// namespace declarations, and reserializes it.
//
// Usage:
//
//	xotfmt [options] [file ...]
//
// With no file arguments xotfmt reads standard input. The result is
// written to standard output.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/faassen/xot"
	"github.com/faassen/xot/internal/commandline"
)

var (
	pretty   = flag.Bool("pretty", false, "indent the output")
	indent   = flag.String("indent", "  ", "indentation per nesting level")
	html     = flag.Bool("html", false, "serialize as HTML5")
	xmldecl  = flag.Bool("xmldecl", false, "emit an XML declaration")
	fix      = flag.Bool("fix", false, "create missing prefixes and remove redundant namespace declarations")
	nfc      = flag.Bool("nfc", false, "normalize text and attribute values to NFC")
	cdata    commandline.Strings
	suppress commandline.Strings
)

func init() {
	flag.Var(&cdata, "cdata", "local name of an element to serialize with CDATA sections (repeatable)")
	flag.Var(&suppress, "suppress", "local name of an element to exclude from indentation (repeatable)")
}

func main() {
	log.SetFlags(0)
	flag.Parse()

	if flag.NArg() == 0 {
		if err := format(os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}
	for _, filename := range flag.Args() {
		file, err := os.Open(filename)
		if err != nil {
			log.Fatal(err)
		}
		err = format(file, os.Stdout)
		file.Close()
		if err != nil {
			log.Fatal(errors.Wrap(err, filename))
		}
	}
}

func format(r io.Reader, w io.Writer) error {
	arena := xot.New()
	doc, err := arena.ParseReader(r)
	if err != nil {
		return errors.Wrap(err, "parse")
	}
	if *fix {
		if err := arena.CreateMissingPrefixes(doc); err != nil {
			return errors.Wrap(err, "create missing prefixes")
		}
		arena.DeduplicateNamespaces(doc)
	}
	opts := &xot.SerializeOptions{
		XMLDeclaration:      *xmldecl,
		Pretty:              *pretty,
		Indent:              *indent,
		CDATAElements:       nameSet(arena, cdata),
		SuppressIndentation: nameSet(arena, suppress),
	}
	if *html {
		opts.Mode = xot.ModeHTML5
		opts.Doctype = xot.Doctype{Kind: xot.DoctypeHTML5}
	}
	if *nfc {
		opts.Normalizer = norm.NFC
	}
	if err := arena.Serialize(w, doc, opts); err != nil {
		return errors.Wrap(err, "serialize")
	}
	fmt.Fprintln(w)
	return nil
}

// nameSet interns no-namespace local names for option lookup.
func nameSet(arena *xot.Arena, locals []string) map[xot.NameID]bool {
	if len(locals) == 0 {
		return nil
	}
	set := make(map[xot.NameID]bool, len(locals))
	for _, local := range locals {
		set[arena.NameString(local)] = true
	}
	return set
}
