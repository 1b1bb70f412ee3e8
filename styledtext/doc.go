// Package styledtext represents strings carrying per-range terminal style
// metadata (foreground/background color, bold) independently of how that
// styling is encoded on the wire.
//
// A Text is a sequence of code points plus a set of non-owning Tag extents.
// Tags never overlap partially — they may nest or sit side by side, but two
// tags of the same Style.Name never straddle each other's boundaries, which
// keeps Slice and Concat simple (clip or shift, never split a tag's meaning).
//
// Parse converts an ANSI SGR-bearing string into a Text. Render does the
// inverse. ExpandTabsANSI operates one level below Text, on the raw ANSI
// string, since tab expansion must happen before parsing (a tab's column
// position depends on the visible characters around it, including ones that
// span escape sequences).
package styledtext
