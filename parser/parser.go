// Copyright 2024 The Docparse Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser implements the block parser: the indentation-driven stack
// machine that turns a sequence of lines into an ast.Object. It is the only
// component that understands line structure; single-line values are
// delegated to package compact.
package parser

import (
	"github.com/go-docparse/docparse/ast"
	"github.com/go-docparse/docparse/compact"
	"github.com/go-docparse/docparse/errors"
	"github.com/go-docparse/docparse/index"
	"github.com/go-docparse/docparse/scanner"
	"github.com/go-docparse/docparse/span"
)

// Option configures a Parse call.
type Option func(*config)

type config struct {
	maxErrors int
	filename  string
}

// WithMaxErrors stops adding new diagnostics once the list reaches n
// (0, the default, means unlimited). Grounded on cue/parser.Option's
// ErrorCount-style knob for runaway-input protection.
func WithMaxErrors(n int) Option {
	return func(c *config) { c.maxErrors = n }
}

// WithFilename attaches name to every diagnostic this parse reports, for
// callers juggling more than one document (e.g. the CLI, or a language
// server keyed by document URI). It does not affect parsing. Grounded on
// cue/parser.Option's filename-attribution knobs (e.g. cue/parser.Filename).
func WithFilename(name string) Option {
	return func(c *config) { c.filename = name }
}

// Parse runs the block parser over text, producing an ast.Object and a
// (possibly empty) list of diagnostics. A nil Object with a non-empty List
// means the input held no usable root value at all (spec invariant 5).
func Parse[T any](text []byte, indexer index.Indexer[T], opts ...Option) (*ast.Object[T], errors.List[T]) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &parser[T]{
		s:   scanner.New(text, indexer),
		cfg: cfg,
	}
	p.run()
	p.reduceTo(0)

	if !p.hasRoot {
		return nil, p.errs
	}
	return &ast.Object[T]{Root: p.root}, p.errs
}

type frameKind int

const (
	frameList frameKind = iota
	frameMap
)

// frame is one level of the indentation stack: either a List or a Map under
// construction. Fields not relevant to the frame's kind are left zero.
// Spec §4.4.1.
type frame[T any] struct {
	kind   frameKind
	indent int
	start  span.Marker[T]

	// List state.
	items          []ast.ExpandedListItem[T]
	floatingHandle bool

	// Map state.
	entries         []ast.ExpandedMapEntry[T]
	hasFloatingKey  bool
	floatingKey     string
	floatingKeySpan span.Span[T]

	// nextCtx/nextInline describe the item/entry that will be produced
	// when a child frame nested under this one eventually reduces: either
	// the floating handle's pending item, or the floating key's pending
	// value. Set whenever floatingHandle/hasFloatingKey is set to true.
	nextCtx    ast.Context[T]
	nextInline string
}

type nodeKind int

const (
	nodeNone nodeKind = iota
	nodeListOpen
	nodeListItem
	nodeMapKey
	nodeMapEntry
)

// node is what a single content line resolves to in steps 5-8 of §4.4.2,
// before the transition table (§4.4.3) decides what to do with it.
type node[T any] struct {
	kind             nodeKind
	handle           bool
	handleItemIndent int
	keySpan          span.Span[T]
	key              string
	value            ast.ExpandedValue[T]
	hasValue         bool
}

type parser[T any] struct {
	s   *scanner.Scanner[T]
	cfg config

	errs  errors.List[T]
	stack []*frame[T]

	comments []ast.StandaloneComment[T]
	gap      int

	indentChar rune // 0 until the document's indent style is locked

	root    ast.ExpandedValue[T]
	hasRoot bool
}

func (p *parser[T]) addErr(e errors.Error[T]) {
	if p.cfg.maxErrors > 0 && len(p.errs) >= p.cfg.maxErrors {
		return
	}
	e.Filename = p.cfg.filename
	p.errs.Add(e)
}

func (p *parser[T]) run() {
	for !p.s.AtEOF() {
		p.processLine()
	}
}

// processLine implements §4.4.2 end to end for a single line.
func (p *parser[T]) processLine() {
	lineStart := p.s.Marker()

	indent, mixed := p.consumeIndent()

	ch, hasCh := p.s.Peek()
	if !hasCh || ch == '\n' {
		p.gap++
		p.consumeNewlineOrEOF()
		return
	}
	if ch == '#' {
		contentStart := p.s.Marker()
		text := p.consumeCommentText()
		p.comments = append(p.comments, ast.StandaloneComment[T]{
			Span:             span.Span[T]{Start: contentStart, End: p.s.Marker()},
			Text:             text,
			Indent:           indent,
			BlankLinesBefore: p.gap,
		})
		p.gap = 0
		p.consumeNewlineOrEOF()
		return
	}

	contentStart := p.s.Marker()
	nested, ok := p.resolveIndent(indent)
	if mixed || !ok {
		p.addErr(errors.New[T](errors.InvalidIndentSize, span.Span[T]{Start: lineStart, End: contentStart},
			"line does not align with any open indentation level"))
		p.discardRestOfLine()
		p.comments = nil
		return
	}

	p.resolvePendingBeforeSibling(nested, contentStart)

	handle := false
	handleItemIndent := 0
	if c, ok := p.s.Peek(); ok && c == '-' {
		handle = true
		p.s.Advance()
		spaces := p.s.PopWhile(func(ch rune) bool { return ch == ' ' || ch == '\t' })
		handleItemIndent = indent + 1 + len(spaces)
	}

	var n node[T]
	n.handle = handle
	n.handleItemIndent = handleItemIndent

	if key, keySpan, ok := p.tryReadKey(); ok {
		n.key, n.keySpan = key, keySpan
		if v, ok := p.parseExpr(""); ok {
			n.kind = nodeMapEntry
			n.value, n.hasValue = v2e(v), true
		} else {
			n.kind = nodeMapKey
		}
	} else if handle {
		if v, ok := p.parseExpr(""); ok {
			n.kind = nodeListItem
			n.value, n.hasValue = v2e(v), true
		} else {
			n.kind = nodeListOpen
		}
	} else {
		n.kind = nodeNone
	}

	inlineComment := p.consumeLineTail()
	p.consumeNewlineOrEOF()

	ctx := ast.Context[T]{StandaloneComments: p.comments, Gap: p.gap, Indent: indent}
	p.comments = nil
	p.gap = 0

	p.dispatch(n, nested, indent, contentStart, ctx, inlineComment)
}

// parseExpr delegates to compact.Parse, then stamps the parser's configured
// filename (if any) onto any diagnostics the call just added and applies
// the same maxErrors ceiling addErr enforces elsewhere, so a compact-form
// value on a block-parser line is subject to the same WithFilename/
// WithMaxErrors options as every other diagnostic. A flow list/map left
// unclosed (compact.Parse's ok == false with a partial List/Map value) is
// kept as the line's value; its MissingListClose/MissingMapClose error is
// the only diagnostic it produces.
func (p *parser[T]) parseExpr(breakChars string) (ast.CompactValue[T], bool) {
	before := len(p.errs)
	v, ok := compact.Parse(p.s, breakChars, &p.errs)
	if !ok && (v.Kind == ast.List || v.Kind == ast.Map) {
		ok = true
	}
	for i := before; i < len(p.errs); i++ {
		p.errs[i].Filename = p.cfg.filename
	}
	if p.cfg.maxErrors > 0 && len(p.errs) > p.cfg.maxErrors {
		p.errs = p.errs[:p.cfg.maxErrors]
	}
	return v, ok
}

func v2e[T any](cv ast.CompactValue[T]) ast.ExpandedValue[T] {
	return ast.ExpandedValue[T]{Span: cv.Span, Kind: ast.ExpandedCompact, Compact: cv}
}

// consumeIndent counts the leading run of spaces/tabs, locking the
// document's indent character on the first one it sees and flagging any
// line that mixes the other character in afterwards. Spec §4.4.2 step 2,
// Open Question (b).
func (p *parser[T]) consumeIndent() (indent int, mixed bool) {
	for {
		ch, ok := p.s.Peek()
		if !ok || (ch != ' ' && ch != '\t') {
			break
		}
		if p.indentChar == 0 {
			p.indentChar = ch
		} else if ch != p.indentChar {
			mixed = true
		}
		p.s.Advance()
		indent++
	}
	return indent, mixed
}

// resolveIndent implements §4.4.2 step 4: decide whether this line nests
// under the current top frame, continues an existing frame at the same
// level (reducing the stack down to it), or fails to align with anything
// open.
func (p *parser[T]) resolveIndent(indent int) (nested bool, ok bool) {
	if len(p.stack) == 0 {
		return indent == 0, indent == 0
	}
	top := p.stack[len(p.stack)-1]
	if indent > top.indent {
		return true, true
	}
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].indent == indent {
			p.reduceTo(i + 1)
			return false, true
		}
	}
	return false, false
}

// resolvePendingBeforeSibling closes out a dangling floating handle/key on
// the (unchanged) top frame when the next line turns out to be a sibling at
// the same level rather than nested content for it. See DESIGN.md's
// addendum on dangling-handle/floating-key resolution ordering.
func (p *parser[T]) resolvePendingBeforeSibling(nested bool, contentStart span.Marker[T]) {
	if nested || len(p.stack) == 0 {
		return
	}
	top := p.stack[len(p.stack)-1]
	switch top.kind {
	case frameList:
		if top.floatingHandle {
			p.addErr(errors.New[T](errors.EmptyExpandedList, span.Point(contentStart), "list marker has no items"))
			top.floatingHandle = false
		}
	case frameMap:
		if top.hasFloatingKey {
			p.addErr(errors.New[T](errors.MissingExpandedMapValue,
				span.Span[T]{Start: top.floatingKeySpan.Start, End: contentStart},
				"missing value for key %q", top.floatingKey))
			top.entries = append(top.entries, ast.ExpandedMapEntry[T]{
				Context: top.nextCtx,
				KeySpan: top.floatingKeySpan,
				Key:     top.floatingKey,
			})
			top.hasFloatingKey = false
		}
	}
}

// tryReadKey looks ahead for `identifier ws* :` at the cursor without
// disturbing it on failure, per §4.4.2 step 6.
func (p *parser[T]) tryReadKey() (string, span.Span[T], bool) {
	buf := p.s.PeekBytes(p.s.Remaining())
	if len(buf) == 0 || !isIdentStart(buf[0]) {
		return "", span.Span[T]{}, false
	}
	i := 1
	for i < len(buf) && isIdentPart(buf[i]) {
		i++
	}
	j := i
	for j < len(buf) && (buf[j] == ' ' || buf[j] == '\t') {
		j++
	}
	if j >= len(buf) || buf[j] != ':' {
		return "", span.Span[T]{}, false
	}

	start := p.s.Marker()
	for k := 0; k < i; k++ {
		p.s.Advance()
	}
	end := p.s.Marker()
	key := string(buf[:i])

	p.s.PopWhile(func(ch rune) bool { return ch == ' ' || ch == '\t' })
	p.s.Advance() // ':'
	return key, span.Span[T]{Start: start, End: end}, true
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// consumeLineTail implements §4.4.2 step 9: optional trailing whitespace,
// then either an inline comment, non-whitespace residue (ExtraneousChars),
// or nothing, up to the newline/EOF.
func (p *parser[T]) consumeLineTail() string {
	p.s.PopWhile(func(ch rune) bool { return ch == ' ' || ch == '\t' })

	if ch, ok := p.s.Peek(); ok && ch == '#' {
		return p.consumeCommentText()
	}
	if ch, ok := p.s.Peek(); ok && ch != '\n' {
		start := p.s.Marker()
		raw := p.s.PopUntil(
			func(ch rune) bool { return ch != '\n' && ch != '#' },
			func(ch rune) bool { return ch == ' ' || ch == '\t' },
		)
		end := p.s.Marker()
		if len(raw) > 0 {
			p.addErr(errors.New[T](errors.ExtraneousChars, span.Span[T]{Start: start, End: end}, "unexpected characters %q", string(raw)))
		}
		p.s.PopWhile(func(ch rune) bool { return ch == ' ' || ch == '\t' })
		if ch2, ok2 := p.s.Peek(); ok2 && ch2 == '#' {
			return p.consumeCommentText()
		}
	}
	return ""
}

func (p *parser[T]) consumeCommentText() string {
	p.s.Advance() // '#'
	raw := p.s.PopWhile(func(ch rune) bool { return ch != '\n' })
	return string(raw)
}

func (p *parser[T]) consumeNewlineOrEOF() {
	if ch, ok := p.s.Peek(); ok && ch == '\n' {
		p.s.Advance()
	}
}

func (p *parser[T]) discardRestOfLine() {
	p.s.PopWhile(func(ch rune) bool { return ch != '\n' })
	p.consumeNewlineOrEOF()
}

func (p *parser[T]) topFrame() *frame[T] {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser[T]) pushListFrame(indent int, start span.Marker[T]) *frame[T] {
	f := &frame[T]{kind: frameList, indent: indent, start: start}
	p.stack = append(p.stack, f)
	return f
}

func (p *parser[T]) pushMapFrame(indent int, start span.Marker[T]) *frame[T] {
	f := &frame[T]{kind: frameMap, indent: indent, start: start}
	p.stack = append(p.stack, f)
	return f
}

// dispatch implements the transition table of §4.4.3. top is the frame on
// top of the stack before this line's node is applied (nil if the stack
// was empty); nested/indent/contentStart/ctx/inlineComment describe
// the current line as resolved by processLine.
func (p *parser[T]) dispatch(n node[T], nested bool, indent int, contentStart span.Marker[T], ctx ast.Context[T], inlineComment string) {
	top := p.topFrame()
	topIsOpenMap := top != nil && top.kind == frameMap && top.hasFloatingKey
	rootish := top == nil || topIsOpenMap

	switch n.kind {
	case nodeNone:
		return

	case nodeListOpen:
		switch {
		case rootish && nested:
			f := p.pushListFrame(indent, contentStart)
			f.floatingHandle = true
			f.nextCtx, f.nextInline = ctx, inlineComment

		case top != nil && top.kind == frameList && !nested:
			top.floatingHandle = true
			top.nextCtx, top.nextInline = ctx, inlineComment

		case top != nil && top.kind == frameList && top.floatingHandle && nested:
			top.floatingHandle = false
			f := p.pushListFrame(indent, contentStart)
			f.floatingHandle = true
			f.nextCtx, f.nextInline = ctx, inlineComment

		default:
			p.reportInvalidIndent(contentStart)
		}

	case nodeListItem:
		switch {
		case rootish && nested:
			f := p.pushListFrame(indent, contentStart)
			f.items = append(f.items, ast.ExpandedListItem[T]{Context: ctx, InlineComment: inlineComment, Value: n.value})

		case top != nil && top.kind == frameList && top.floatingHandle && nested:
			top.floatingHandle = false
			f := p.pushListFrame(indent, contentStart)
			f.items = append(f.items, ast.ExpandedListItem[T]{Context: ctx, InlineComment: inlineComment, Value: n.value})

		case top != nil && top.kind == frameList && !top.floatingHandle && !nested:
			top.items = append(top.items, ast.ExpandedListItem[T]{Context: ctx, InlineComment: inlineComment, Value: n.value})

		default:
			p.reportInvalidIndent(contentStart)
		}

	case nodeMapEntry:
		switch {
		case rootish && nested:
			mapIndent := indent
			entryCtx, entryInline := ctx, inlineComment
			if n.handle {
				lf := p.pushListFrame(indent, contentStart)
				lf.nextCtx, lf.nextInline = ctx, inlineComment
				mapIndent = n.handleItemIndent
				entryCtx, entryInline = ast.Context[T]{Indent: n.handleItemIndent}, ""
			}
			f := p.pushMapFrame(mapIndent, contentStart)
			f.entries = append(f.entries, ast.ExpandedMapEntry[T]{Context: entryCtx, InlineComment: entryInline, KeySpan: n.keySpan, Key: n.key, Value: n.value})

		case top != nil && top.kind == frameList && !top.floatingHandle && !nested && n.handle:
			top.nextCtx, top.nextInline = ctx, inlineComment
			f := p.pushMapFrame(n.handleItemIndent, contentStart)
			f.entries = append(f.entries, ast.ExpandedMapEntry[T]{Context: ast.Context[T]{Indent: n.handleItemIndent}, InlineComment: "", KeySpan: n.keySpan, Key: n.key, Value: n.value})

		case top != nil && top.kind == frameMap && !top.hasFloatingKey && !nested && !n.handle:
			top.entries = append(top.entries, ast.ExpandedMapEntry[T]{Context: ctx, InlineComment: inlineComment, KeySpan: n.keySpan, Key: n.key, Value: n.value})

		default:
			p.reportInvalidIndent(contentStart)
		}

	case nodeMapKey:
		switch {
		case top != nil && top.kind == frameMap && !top.hasFloatingKey && !nested && !n.handle:
			top.hasFloatingKey = true
			top.floatingKey = n.key
			top.floatingKeySpan = n.keySpan
			top.nextCtx, top.nextInline = ctx, inlineComment

		case rootish && nested:
			mapIndent := indent
			entryCtx, entryInline := ctx, inlineComment
			if n.handle {
				lf := p.pushListFrame(indent, contentStart)
				lf.nextCtx, lf.nextInline = ctx, inlineComment
				mapIndent = n.handleItemIndent
				entryCtx, entryInline = ast.Context[T]{Indent: n.handleItemIndent}, ""
			}
			f := p.pushMapFrame(mapIndent, contentStart)
			f.hasFloatingKey = true
			f.floatingKey = n.key
			f.floatingKeySpan = n.keySpan
			f.nextCtx, f.nextInline = entryCtx, entryInline

		case top != nil && top.kind == frameList && !top.floatingHandle && !nested && n.handle:
			top.nextCtx, top.nextInline = ctx, inlineComment
			f := p.pushMapFrame(n.handleItemIndent, contentStart)
			f.hasFloatingKey = true
			f.floatingKey = n.key
			f.floatingKeySpan = n.keySpan
			f.nextCtx, f.nextInline = ast.Context[T]{Indent: n.handleItemIndent}, ""

		default:
			p.reportInvalidIndent(contentStart)
		}
	}
}

func (p *parser[T]) reportInvalidIndent(contentStart span.Marker[T]) {
	p.addErr(errors.New[T](errors.InvalidIndent, span.Point(contentStart), "content does not fit the current structure"))
}

// reduceTo pops frames until len(stack) == targetDepth, collapsing each
// popped frame into a value and attaching it to the frame beneath it (or,
// for the last frame, recording it as the parse's root). Spec §4.4.4.
func (p *parser[T]) reduceTo(targetDepth int) {
	for len(p.stack) > targetDepth {
		f := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]

		val, ok := p.collapse(f)
		if !ok {
			continue
		}
		if len(p.stack) == 0 {
			p.root = val
			p.hasRoot = true
			continue
		}
		p.attach(p.stack[len(p.stack)-1], val)
	}
}

// collapse turns a popped frame into its ExpandedValue, reporting
// EmptyExpandedList / MissingExpandedMapValue as needed. Spec §4.4.4,
// invariant 4.
func (p *parser[T]) collapse(f *frame[T]) (ast.ExpandedValue[T], bool) {
	end := p.s.Marker()

	switch f.kind {
	case frameList:
		if len(f.items) == 0 {
			p.addErr(errors.New[T](errors.EmptyExpandedList, span.Span[T]{Start: f.start, End: end}, "list has no items"))
			return ast.ExpandedValue[T]{}, false
		}
		if f.floatingHandle {
			p.addErr(errors.New[T](errors.EmptyExpandedList, span.Point(end), "trailing list marker has no items"))
		}
		return ast.ExpandedValue[T]{
			Span:  span.Span[T]{Start: f.start, End: end},
			Kind:  ast.ExpandedList,
			Items: f.items,
		}, true

	case frameMap:
		entries := f.entries
		if f.hasFloatingKey {
			p.addErr(errors.New[T](errors.MissingExpandedMapValue,
				span.Span[T]{Start: f.floatingKeySpan.Start, End: end},
				"missing value for key %q", f.floatingKey))
			entries = append(entries, ast.ExpandedMapEntry[T]{Context: f.nextCtx, KeySpan: f.floatingKeySpan, Key: f.floatingKey})
		}
		return ast.ExpandedValue[T]{
			Span:    span.Span[T]{Start: f.start, End: end},
			Kind:    ast.ExpandedMap,
			Entries: entries,
		}, true
	}
	return ast.ExpandedValue[T]{}, false
}

// attach places a freshly collapsed child value into the parent frame's
// pending slot: a List's next item, or a Map's floating-key value.
func (p *parser[T]) attach(parent *frame[T], val ast.ExpandedValue[T]) {
	switch parent.kind {
	case frameList:
		parent.items = append(parent.items, ast.ExpandedListItem[T]{
			Context:       parent.nextCtx,
			InlineComment: parent.nextInline,
			Value:         val,
		})
		parent.floatingHandle = false
		parent.nextCtx, parent.nextInline = ast.Context[T]{}, ""

	case frameMap:
		if !parent.hasFloatingKey {
			return
		}
		parent.entries = append(parent.entries, ast.ExpandedMapEntry[T]{
			Context:       parent.nextCtx,
			InlineComment: parent.nextInline,
			KeySpan:       parent.floatingKeySpan,
			Key:           parent.floatingKey,
			Value:         val,
		})
		parent.hasFloatingKey = false
		parent.nextCtx, parent.nextInline = ast.Context[T]{}, ""
	}
}
