// Package annotation tags localized UI strings with their localization key
// using invisible secret messages, and recovers the tags from composite text.
//
// An annotated string reads
//
//	hidden("<l10n:KEY:TABLE>") + uiString + hidden("</l10n>")
//
// so it renders exactly like uiString. Annotated strings may be concatenated
// or nested when a UI string is stitched together from several localized
// pieces; Extract reports one StringAnnotation per closed pair.
package annotation

import (
	"errors"
	"regexp"
	"strings"

	"xdao.co/stegtext/stego"
)

// Markers describes the secret messages that open and close an annotation.
type Markers struct {
	// Open is the opening marker template. It must contain the placeholders
	// KEY and TABLE, in that order.
	Open string
	// Close is the closing marker message.
	Close string
	// DefaultTable replaces an empty table name when extracting.
	DefaultTable string
}

// DefaultMarkers returns the markers used when no configuration is given.
func DefaultMarkers() Markers {
	return Markers{
		Open:         "<l10n:KEY:TABLE>",
		Close:        "</l10n>",
		DefaultTable: "Localizable",
	}
}

// StringAnnotation is one recovered key/table pair and the visible text it covers.
type StringAnnotation struct {
	Key      string
	Table    string
	UIString string
	// Range spans from the start of the opening marker to the end of the
	// closing marker, in bytes of the scanned string.
	Range stego.Range
}

// Validate checks that the markers can be told apart when scanning.
func (m Markers) Validate() error {
	if m.Close == "" {
		return newError(RuleEmptyMarker, "close marker is empty")
	}
	k := strings.Index(m.Open, "KEY")
	tb := strings.Index(m.Open, "TABLE")
	if k < 0 || tb < 0 || tb < k {
		return newError(RuleBadTemplate, "open marker must contain KEY followed by TABLE")
	}
	if strings.HasSuffix(m.Open, "TABLE") {
		return newError(RuleBadTemplate, "open marker must end with a literal after TABLE")
	}
	re, err := m.openPattern()
	if err != nil {
		return wrapError(RuleBadTemplate, "open marker does not compile", err)
	}
	if re.MatchString(m.Close) {
		return newError(RuleAmbiguous, "close marker also matches the open marker")
	}
	if lead := m.Open[:k]; lead != "" && strings.HasPrefix(lead, m.Close) {
		return newError(RuleAmbiguous, "close marker is a prefix of every open marker")
	}
	return nil
}

// Annotate wraps uiString in hidden open/close markers for key and table.
func (m Markers) Annotate(uiString, key, table string) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	if key == "" {
		return "", newError(RuleEmptyKey, "localization key is empty")
	}
	if strings.Contains(key, ":") {
		return "", newError(RuleBadKey, "localization key must not contain ':'")
	}
	between, after := m.literals()
	if !endsAt(key, between) {
		return "", newErrorf(RuleBadKey, "localization key must not contain %q", between)
	}
	if !endsAt(table, after) {
		return "", newErrorf(RuleBadTable, "table name must not contain %q", after)
	}
	open := strings.Replace(m.Open, "KEY", key, 1)
	open = strings.Replace(open, "TABLE", table, 1)
	if strings.HasPrefix(open, m.Close) {
		return "", newError(RuleBadKey, "open marker for this key starts with the close marker")
	}

	prefix, err := stego.Encode(open)
	if err != nil {
		return "", wrapError(RuleEncode, "encode open marker", err)
	}
	suffix, err := stego.Encode(m.Close)
	if err != nil {
		return "", wrapError(RuleEncode, "encode close marker", err)
	}
	return prefix + uiString + suffix, nil
}

type tokenKind int

const (
	tokenOther tokenKind = iota
	tokenOpen
	tokenClose
)

type token struct {
	kind  tokenKind
	text  string
	key   string
	table string
}

type openMarker struct {
	r     stego.Range
	key   string
	table string
}

// Extract recovers every annotation in s.
//
// Each close marker pairs with the innermost open marker still pending.
// Annotations are returned in the order their close markers appear. The
// UIString is the visible text between the pair with any nested hidden
// messages removed. Markers of directly concatenated annotations share one
// carrier run; they are split apart again. Other secret messages are ignored.
//
// Extract returns what it could pair even when it also returns an error.
// Unpaired markers produce RuleUnbalanced errors; runs that fail to decode
// are passed through as stego MalformedPayload errors. All errors are joined.
func (m Markers) Extract(s string) ([]StringAnnotation, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	re, err := m.openPrefixPattern()
	if err != nil {
		return nil, wrapError(RuleBadTemplate, "open marker does not compile", err)
	}
	found, scanErr := stego.FindAll(s)
	errs := []error{scanErr}

	var stack []openMarker
	var out []StringAnnotation
	for _, f := range found {
		offset := f.Range.Offset
		for _, tok := range m.tokens(re, f.SecretMessage) {
			r := stego.Range{Offset: offset, Length: stego.EncodedLen(tok.text)}
			offset = r.End()
			switch tok.kind {
			case tokenOpen:
				stack = append(stack, openMarker{r: r, key: tok.key, table: tok.table})
			case tokenClose:
				if len(stack) == 0 {
					errs = append(errs, locatedError(RuleUnbalanced, "close marker without open marker", r))
					continue
				}
				open := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				table := open.table
				if table == "" {
					table = m.DefaultTable
				}
				out = append(out, StringAnnotation{
					Key:      open.key,
					Table:    table,
					UIString: stego.Strip(s[open.r.End():r.Offset]),
					Range:    stego.Range{Offset: open.r.Offset, Length: r.End() - open.r.Offset},
				})
			}
		}
	}
	for _, open := range stack {
		errs = append(errs, locatedError(RuleUnbalanced, "open marker for key "+open.key+" is never closed", open.r))
	}
	return out, errors.Join(errs...)
}

// tokens splits one decoded secret message into markers. Text between
// markers is returned as tokenOther.
func (m Markers) tokens(openRe *regexp.Regexp, msg string) []token {
	var toks []token
	for msg != "" {
		if strings.HasPrefix(msg, m.Close) {
			toks = append(toks, token{kind: tokenClose, text: m.Close})
			msg = msg[len(m.Close):]
			continue
		}
		if sub := openRe.FindStringSubmatch(msg); sub != nil {
			toks = append(toks, token{kind: tokenOpen, text: sub[0], key: sub[1], table: sub[2]})
			msg = msg[len(sub[0]):]
			continue
		}
		n := m.nextMarker(openRe, msg)
		toks = append(toks, token{kind: tokenOther, text: msg[:n]})
		msg = msg[n:]
	}
	return toks
}

// nextMarker returns the byte index of the first marker in msg after its
// first character, or len(msg).
func (m Markers) nextMarker(openRe *regexp.Regexp, msg string) int {
	for i := range msg {
		if i == 0 {
			continue
		}
		rest := msg[i:]
		if strings.HasPrefix(rest, m.Close) || openRe.MatchString(rest) {
			return i
		}
	}
	return len(msg)
}

// literals returns the open template's text between KEY and TABLE and the
// text following TABLE.
func (m Markers) literals() (between, after string) {
	k := strings.Index(m.Open, "KEY")
	tb := strings.Index(m.Open, "TABLE")
	return m.Open[k+len("KEY") : tb], m.Open[tb+len("TABLE"):]
}

// endsAt reports whether the first occurrence of lit in s+lit is the
// appended one, so a lazy capture of s stops where it should.
func endsAt(s, lit string) bool {
	return lit == "" || strings.Index(s+lit, lit) == len(s)
}

func (m Markers) openPattern() (*regexp.Regexp, error) {
	return m.compileOpen("$")
}

// openPrefixPattern matches one open marker at the start of a message.
func (m Markers) openPrefixPattern() (*regexp.Regexp, error) {
	return m.compileOpen("")
}

func (m Markers) compileOpen(suffix string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(m.Open)
	quoted = strings.Replace(quoted, "KEY", "([^:]+?)", 1)
	quoted = strings.Replace(quoted, "TABLE", "(.*?)", 1)
	return regexp.Compile("^" + quoted + suffix)
}
