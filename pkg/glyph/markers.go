package glyph

import "fmt"

type Glyph struct {
	Key       string
	Symbol    string
	Meaning   string
	Signifier bool
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	italicCode    = 3
	underlineCode = 4
	strikeCode    = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Underline(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, underlineCode, in, escape, resetCode)
}

func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, 7)

	g = append(g, Glyph{
		Key:     "o",
		Symbol:  "●",
		Meaning: "moment",
	}, Glyph{
		Key:     "=",
		Symbol:  "▬",
		Meaning: "span",
	}, Glyph{
		Key:     "^",
		Symbol:  "◆",
		Meaning: "arc",
	}, Glyph{
		Key:     "%",
		Symbol:  "↻",
		Meaning: "repeats",
	}, Glyph{
		Key:     "",
		Symbol:  "",
		Meaning: "any",
	}, Glyph{
		Key:       "d",
		Symbol:    " ",
		Meaning:   "whole-day dates",
		Signifier: true,
	}, Glyph{
		Key:       "t",
		Symbol:    "◷",
		Meaning:   "exact times",
		Signifier: true,
	})

	return g
}

func (g Glyph) String() string {
	return g.Symbol
}

type Marker int
type Signifier int

const (
	Moment Marker = iota
	Span
	Arc
	Repeats
	Any
	Day Signifier = iota
	Clock
)

func (m Marker) Glyph() Glyph {
	return DefaultGlyphs()[m]
}

func (m Marker) String() string {
	return m.Glyph().String()
}

func (s Signifier) Glyph() Glyph {
	return DefaultGlyphs()[s]
}

func (s Signifier) String() string {
	return s.Glyph().String()
}

// For returns the marker describing an event shape.
func For(isDuration, isArc, repeats bool) Marker {
	switch {
	case isArc:
		return Arc
	case repeats:
		return Repeats
	case isDuration:
		return Span
	default:
		return Moment
	}
}
