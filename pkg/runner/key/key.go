// Package key prints the legend of event markers and signifiers.
package key

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/chrono/pkg/glyph"
)

type Key struct{}

func (k *Key) Do(ctx context.Context) error {
	all := glyph.DefaultGlyphs()
	k.section("Markers", all, false)
	k.section("Signifiers", all, true)
	return nil
}

// section prints one class of glyphs: markers describe an event's
// shape, signifiers its date precision.
func (k *Key) section(title string, glyphs []glyph.Glyph, signifiers bool) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("Key"), glyph.Bold("Symbol"), glyph.Bold("Meaning"))
	for _, g := range glyphs {
		if g.Signifier != signifiers {
			continue
		}
		tbl.AddRow(g.Key, g.Symbol, g.Meaning)
	}

	_, _ = fmt.Fprintln(color.Output, glyph.Bold(glyph.Underline("\n"+title)))
	_, _ = fmt.Fprintln(color.Output, tbl)
}
