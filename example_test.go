package xot_test

import (
	"fmt"
	"log"

	"github.com/faassen/xot"
)

func Example() {
	arena := xot.New()
	doc, err := arena.ParseString(`<doc><p>one</p></doc>`)
	if err != nil {
		log.Fatal(err)
	}
	root, err := arena.DocumentElement(doc)
	if err != nil {
		log.Fatal(err)
	}

	p := arena.NewElement(arena.NameString("p"))
	if err := arena.Append(root, p); err != nil {
		log.Fatal(err)
	}
	if err := arena.SetTextContent(p, "two"); err != nil {
		log.Fatal(err)
	}

	out, err := arena.SerializeString(doc, &xot.SerializeOptions{Pretty: true})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
	// Output:
	// <doc>
	//   <p>one</p>
	//   <p>two</p>
	// </doc>
}

func ExampleArena_CreateMissingPrefixes() {
	arena := xot.New()
	doc := arena.NewDocument()
	ns := arena.AddNamespace("urn:example")
	root := arena.NewElement(arena.AddName("root", ns))
	if err := arena.Append(doc, root); err != nil {
		log.Fatal(err)
	}
	child := arena.NewElement(arena.AddName("c", ns))
	if err := arena.Append(root, child); err != nil {
		log.Fatal(err)
	}

	if err := arena.CreateMissingPrefixes(doc); err != nil {
		log.Fatal(err)
	}
	out, err := arena.String(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(out)
	// Output:
	// <n0:root xmlns:n0="urn:example"><n0:c/></n0:root>
}
