// Command cascadedemo drives a cascade.Engine end to end: it parses an
// HTML fragment and a stylesheet, cascades and computes a handful of
// properties for every element, and prints the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/keskinen/cascade/cascade"
	"github.com/keskinen/cascade/dom"
	"github.com/keskinen/cascade/network"
	"github.com/keskinen/cascade/valuemanagers"
)

const defaultHTML = `<div id="page" style="color: navy">
  <p class="intro">Hello</p>
  <p class="intro" style="font-size: 1.5em">World</p>
</div>`

const defaultCSS = `
.intro { font-size: 20px; }
#page p { color: green; }
p.intro[style] { font-weight: bold; }
`

var reportedProperties = []string{"display", "color", "font-size", "line-height", "font-weight"}

func main() {
	htmlPath := flag.String("html", "", "path to an HTML fragment (defaults to a built-in sample)")
	cssPath := flag.String("css", "", "path to a stylesheet, applied at USER_AGENT origin (defaults to a built-in sample)")
	documentURI := flag.String("doc-url", "", "document URL; enables fetching @import targets over HTTP, same-origin only")
	flag.Parse()

	htmlText, err := readOrDefault(*htmlPath, defaultHTML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cascadedemo: %v\n", err)
		os.Exit(1)
	}
	cssText, err := readOrDefault(*cssPath, defaultCSS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cascadedemo: %v\n", err)
		os.Exit(1)
	}

	doc, err := dom.ParseFragment(htmlText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cascadedemo: parsing HTML: %v\n", err)
		os.Exit(1)
	}

	vms, shs := valuemanagers.Defaults()
	cfg := cascade.Config{
		ValueManagers:     vms,
		ShorthandManagers: shs,
		WantsHints:        true,
		HintsNS:           "",
		DocumentURI:       *documentURI,
	}
	if *documentURI != "" {
		client, err := network.NewClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cascadedemo: %v\n", err)
			os.Exit(1)
		}
		loader := network.NewLoader(client)
		cfg.ImportLoader = network.NewCascadeImportLoader(loader, context.Background())
		cfg.CheckLoadExternalResource = network.SameOriginOnly(*documentURI)
	}
	engine := cascade.NewEngine(doc, cfg)

	if err := engine.SetUserAgentStyleSheet(cssText); err != nil {
		fmt.Fprintf(os.Stderr, "cascadedemo: parsing stylesheet: %v\n", err)
		os.Exit(1)
	}

	registry := engine.Registry()
	indices := make([]cascade.PropertyIndex, len(reportedProperties))
	for i, name := range reportedProperties {
		indices[i] = registry.IndexOf(name)
	}

	walk(doc.Root(), 0, func(el *dom.Element, depth int) {
		printComputed(engine, el, depth, indices)
	})
}

func walk(n *dom.Node, depth int, visit func(el *dom.Element, depth int)) {
	if n.IsStylable() {
		visit((*dom.Element)(n), depth)
		depth++
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		walk(c, depth, visit)
	}
}

func printComputed(engine *cascade.Engine, el *dom.Element, depth int, indices []cascade.PropertyIndex) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Printf("%s<%s>\n", indent, el.LocalName())
	for i, name := range reportedProperties {
		if indices[i] == cascade.NoProperty {
			continue
		}
		v := engine.GetComputedStyle(el, "", indices[i])
		fmt.Printf("%s  %s: %v\n", indent, name, v)
	}
}

func readOrDefault(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
