package spec

import (
	"bytes"
	"io"

	verr "github.com/kbdl/kbdl/error"
	"github.com/kbdl/kbdl/source"
)

const (
	keywordLayout  = "layout"
	keywordOptions = "options"
	keywordKey     = "key"
	keywordLayer   = "layer"
	keywordOut     = "out"
)

func raiseSyntaxError(synErr *SyntaxError, span source.Span, detail string, labels ...*verr.Label) {
	panic(&verr.SpecError{
		Cause:  synErr,
		Detail: detail,
		Span:   span,
		Labels: labels,
	})
}

// Parse reads a whole keyboard description. The first syntax error stops the parse
// and is returned as a *verr.SpecError.
func Parse(src io.Reader) (*FileNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

// ParseBytes is Parse over an in-memory source.
func ParseBytes(src []byte) (*FileNode, error) {
	return Parse(bytes.NewReader(src))
}

type parser struct {
	lex     *lexer
	buf     []*token
	lastTok *token
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *FileNode, retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			panic(v)
		}
		retErr = err
	}()
	return p.parseFile(), nil
}

func (p *parser) parseFile() *FileNode {
	file := &FileNode{}
	for {
		tok := p.peek(0)
		if tok.kind == tokenKindEOF {
			break
		}
		if tok.kind != tokenKindID {
			raiseSyntaxError(synErrUnexpectedTopLevel, tok.span, tok.String())
		}
		switch tok.text {
		case keywordLayout:
			layout := p.parseLayout()
			if file.Layout != nil {
				raiseSyntaxError(synErrDuplicateLayout, layout.Span, "",
					verr.NewLabel(file.Layout.Span, "the first layout block is here"))
			}
			file.Layout = layout
		case keywordOptions:
			file.Options = append(file.Options, p.parseOptions())
		case keywordKey:
			file.Keys = append(file.Keys, p.parseKeyDecl())
		case keywordLayer:
			file.Layers = append(file.Layers, p.parseLayer())
		default:
			raiseSyntaxError(synErrUnexpectedTopLevel, tok.span, tok.String())
		}
		file.Span = file.Span.Join(p.lastTok.span)
	}
	if file.Layout == nil {
		raiseSyntaxError(synErrNoLayout, p.peek(0).span, "")
	}
	return file
}

func (p *parser) parseLayout() *LayoutNode {
	kw := p.next()
	p.expectOpen(kw)
	layout := &LayoutNode{}
	for !p.consume(tokenKindRBrace) {
		p.checkUnclosed(kw)
		layout.Rows = append(layout.Rows, p.parseLayoutRow())
	}
	layout.Span = kw.span.Join(p.lastTok.span)
	return layout
}

func (p *parser) parseLayoutRow() *LayoutRowNode {
	row := &LayoutRowNode{}
	for {
		tok := p.peek(0)
		switch tok.kind {
		case tokenKindKeyCount:
			p.next()
			row.Items = append(row.Items, &LayoutItemNode{
				Kind:  LayoutItemKeys,
				Count: tok.num,
				Span:  tok.span,
			})
		case tokenKindSpaceCount:
			p.next()
			row.Items = append(row.Items, &LayoutItemNode{
				Kind:  LayoutItemSpaces,
				Count: tok.num,
				Span:  tok.span,
			})
		case tokenKindLBracket:
			p.next()
			if !p.consume(tokenKindInt) {
				raiseSyntaxError(synErrNoRemapColumn, p.peek(0).span, p.peek(0).String())
			}
			col := p.lastTok
			if !p.consume(tokenKindRBracket) {
				raiseSyntaxError(synErrUnclosedBracket, p.peek(0).span, p.peek(0).String())
			}
			row.Items = append(row.Items, &LayoutItemNode{
				Kind:   LayoutItemRemap,
				Column: col.num,
				Span:   tok.span.Join(p.lastTok.span),
			})
		case tokenKindSemicolon:
			if len(row.Items) == 0 {
				raiseSyntaxError(synErrEmptyRow, tok.span, "")
			}
			p.next()
			row.Semicolon = tok.span
			row.Span = row.Items[0].Span.Join(tok.span)
			return row
		case tokenKindRBrace, tokenKindEOF:
			if len(row.Items) == 0 {
				raiseSyntaxError(synErrInvalidLayoutItem, tok.span, tok.String())
			}
			raiseSyntaxError(synErrNoSemicolon, row.Items[len(row.Items)-1].Span.End(), "")
		default:
			raiseSyntaxError(synErrInvalidLayoutItem, tok.span, tok.String())
		}
	}
}

func (p *parser) parseOptions() *OptionsNode {
	kw := p.next()
	if !p.consume(tokenKindID) {
		raiseSyntaxError(synErrNoBackend, p.peek(0).span, p.peek(0).String())
	}
	opts := &OptionsNode{
		Backend:     p.lastTok.text,
		BackendSpan: p.lastTok.span,
	}
	p.expectOpen(kw)
	for !p.consume(tokenKindRBrace) {
		p.checkUnclosed(kw)
		if !p.consume(tokenKindID) {
			raiseSyntaxError(synErrNoOptionName, p.peek(0).span, p.peek(0).String())
		}
		name := p.lastTok
		value := p.parseValue()
		semi := p.expectSemicolon()
		opts.Options = append(opts.Options, &OptionNode{
			Name:      name.text,
			NameSpan:  name.span,
			Value:     value.text,
			ValueSpan: value.span,
			Span:      name.span.Join(semi.span),
		})
	}
	opts.Span = kw.span.Join(p.lastTok.span)
	return opts
}

func (p *parser) parseKeyDecl() *KeyDeclNode {
	kw := p.next()
	if !p.consume(tokenKindID) {
		raiseSyntaxError(synErrNoKeyName, p.peek(0).span, p.peek(0).String())
	}
	decl := &KeyDeclNode{
		Name:     p.lastTok.text,
		NameSpan: p.lastTok.span,
	}
	p.expectOpen(kw)
	for !p.consume(tokenKindRBrace) {
		p.checkUnclosed(kw)
		out := p.peek(0)
		if out.kind != tokenKindID || out.text != keywordOut {
			raiseSyntaxError(synErrNoOut, out.span, out.String())
		}
		p.next()
		if !p.consume(tokenKindID) {
			raiseSyntaxError(synErrNoBackend, p.peek(0).span, p.peek(0).String())
		}
		backend := p.lastTok
		value := p.parseValue()
		semi := p.expectSemicolon()
		decl.Outputs = append(decl.Outputs, &KeyOutputNode{
			Backend:     backend.text,
			BackendSpan: backend.span,
			Text:        value.text,
			Span:        out.span.Join(semi.span),
		})
	}
	decl.Span = kw.span.Join(p.lastTok.span)
	return decl
}

// parseValue parses `: "string"`.
func (p *parser) parseValue() *token {
	if !p.consume(tokenKindColon) {
		raiseSyntaxError(synErrNoColon, p.peek(0).span, p.peek(0).String())
	}
	if !p.consume(tokenKindString) {
		raiseSyntaxError(synErrNoString, p.peek(0).span, p.peek(0).String())
	}
	return p.lastTok
}

func (p *parser) parseLayer() *LayerNode {
	kw := p.next()
	if !p.consume(tokenKindID) {
		raiseSyntaxError(synErrNoLayerName, p.peek(0).span, p.peek(0).String())
	}
	layer := &LayerNode{
		Name:     p.lastTok.text,
		NameSpan: p.lastTok.span,
	}
	p.expectOpen(kw)
	for !p.consume(tokenKindRBrace) {
		p.checkUnclosed(kw)
		layer.Rows = append(layer.Rows, p.parseLayerRow())
	}
	layer.Span = kw.span.Join(p.lastTok.span)
	return layer
}

func (p *parser) parseLayerRow() *LayerRowNode {
	row := &LayerRowNode{}
	for {
		tok := p.peek(0)
		switch tok.kind {
		case tokenKindSemicolon:
			if len(row.Items) == 0 {
				raiseSyntaxError(synErrEmptyRow, tok.span, "")
			}
			p.next()
			row.Semicolon = tok.span
			row.Span = row.Items[0].ItemSpan().Join(tok.span)
			return row
		case tokenKindRBrace, tokenKindEOF:
			if len(row.Items) == 0 {
				raiseSyntaxError(synErrInvalidKey, tok.span, tok.String())
			}
			raiseSyntaxError(synErrNoSemicolon, row.Items[len(row.Items)-1].ItemSpan().End(), "")
		case tokenKindChordOpen:
			p.next()
			key := p.parseKey()
			if !p.consume(tokenKindChordClose) {
				raiseSyntaxError(synErrUnclosedChord, p.peek(0).span, p.peek(0).String(),
					verr.NewLabel(tok.span, "the chord starts here"))
			}
			row.Items = append(row.Items, &ChordNode{
				Key:  key,
				Span: tok.span.Join(p.lastTok.span),
			})
		default:
			row.Items = append(row.Items, p.parseKey())
		}
	}
}

func (p *parser) parseKey() *KeyNode {
	tap := p.parsePlainKey()
	key := &KeyNode{
		Tap:  tap,
		Span: tap.Span,
	}
	switch {
	case p.consume(tokenKindAt):
		key.HoldTap = HoldTapPermissive
	case p.consume(tokenKindAtTilde):
		key.HoldTap = HoldTapOnOtherKeyPress
	default:
		return key
	}
	key.Hold = p.parsePlainKey()
	key.Span = key.Span.Join(key.Hold.Span)

	// `[N]` right after the hold key is a timeout; `[name]` would be the next key.
	if p.peek(0).kind == tokenKindLBracket && p.peek(1).kind == tokenKindInt {
		p.next()
		key.Timeout = p.next().num
		if !p.consume(tokenKindRBracket) {
			raiseSyntaxError(synErrUnclosedBracket, p.peek(0).span, p.peek(0).String())
		}
		key.Span = key.Span.Join(p.lastTok.span)
	}
	return key
}

func (p *parser) parsePlainKey() *PlainKeyNode {
	tok := p.peek(0)
	switch tok.kind {
	case tokenKindID:
		p.next()
		return &PlainKeyNode{
			Kind: PlainKeyNamed,
			Name: tok.text,
			Span: tok.span,
		}
	case tokenKindChar:
		p.next()
		return &PlainKeyNode{
			Kind:  PlainKeyChar,
			Char:  tok.char,
			Quote: '\'',
			Span:  tok.span,
		}
	case tokenKindString:
		p.next()
		cs := []rune(tok.text)
		if len(cs) != 1 {
			raiseSyntaxError(synErrCharLength, tok.span, tok.String())
		}
		return &PlainKeyNode{
			Kind:  PlainKeyChar,
			Char:  cs[0],
			Quote: '"',
			Span:  tok.span,
		}
	case tokenKindLBracket:
		p.next()
		if !p.consume(tokenKindID) {
			raiseSyntaxError(synErrNoLayerName, p.peek(0).span, p.peek(0).String())
		}
		name := p.lastTok
		if !p.consume(tokenKindRBracket) {
			raiseSyntaxError(synErrUnclosedBracket, p.peek(0).span, p.peek(0).String())
		}
		return &PlainKeyNode{
			Kind: PlainKeyLayer,
			Name: name.text,
			Span: tok.span.Join(p.lastTok.span),
		}
	}
	raiseSyntaxError(synErrInvalidKey, tok.span, tok.String())
	return nil
}

func (p *parser) expectOpen(kw *token) {
	if !p.consume(tokenKindLBrace) {
		raiseSyntaxError(synErrNoLBrace, p.peek(0).span, p.peek(0).String(),
			verr.NewLabel(kw.span, "the block starts here"))
	}
}

func (p *parser) checkUnclosed(kw *token) {
	if p.peek(0).kind == tokenKindEOF {
		raiseSyntaxError(synErrUnclosedBlock, p.peek(0).span, "",
			verr.NewLabel(kw.span, "the block starts here"))
	}
}

func (p *parser) expectSemicolon() *token {
	if !p.consume(tokenKindSemicolon) {
		raiseSyntaxError(synErrNoSemicolon, p.lastTok.span.End(), "")
	}
	return p.lastTok
}

// peek returns the n-th token ahead without consuming it.
func (p *parser) peek(n int) *token {
	for len(p.buf) <= n {
		tok, err := p.lex.next()
		if err != nil {
			panic(err)
		}
		if tok.kind == tokenKindInvalid {
			raiseSyntaxError(synErrInvalidToken, tok.span, tok.String())
		}
		p.buf = append(p.buf, tok)
		if tok.kind == tokenKindEOF {
			// Keep answering EOF however far the parser looks.
			for len(p.buf) <= n {
				p.buf = append(p.buf, tok)
			}
		}
	}
	return p.buf[n]
}

func (p *parser) next() *token {
	tok := p.peek(0)
	if tok.kind != tokenKindEOF {
		p.buf = p.buf[1:]
	}
	p.lastTok = tok
	return tok
}

func (p *parser) consume(expected tokenKind) bool {
	if p.peek(0).kind != expected {
		return false
	}
	p.next()
	return true
}
