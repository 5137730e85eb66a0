package spec

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	verr "github.com/kbdl/kbdl/error"
	"github.com/kbdl/kbdl/source"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindID         = tokenKind("id")
	tokenKindKeyCount   = tokenKind("key count")
	tokenKindSpaceCount = tokenKind("space count")
	tokenKindInt        = tokenKind("integer")
	tokenKindChar       = tokenKind("character")
	tokenKindString     = tokenKind("string")
	tokenKindLBrace     = tokenKind("{")
	tokenKindRBrace     = tokenKind("}")
	tokenKindLBracket   = tokenKind("[")
	tokenKindRBracket   = tokenKind("]")
	tokenKindSemicolon  = tokenKind(";")
	tokenKindColon      = tokenKind(":")
	tokenKindAt         = tokenKind("@")
	tokenKindAtTilde    = tokenKind("@~")
	tokenKindChordOpen  = tokenKind(">")
	tokenKindChordClose = tokenKind("<")
	tokenKindEOF        = tokenKind("eof")
	tokenKindInvalid    = tokenKind("invalid")
)

type token struct {
	kind tokenKind
	text string
	num  int
	char rune
	span source.Span
}

func newSymbolToken(kind tokenKind, text string, span source.Span) *token {
	return &token{
		kind: kind,
		text: text,
		span: span,
	}
}

func newIDToken(text string, span source.Span) *token {
	return &token{
		kind: tokenKindID,
		text: text,
		span: span,
	}
}

func newNumberToken(kind tokenKind, text string, num int, span source.Span) *token {
	return &token{
		kind: kind,
		text: text,
		num:  num,
		span: span,
	}
}

func newCharToken(text string, c rune, span source.Span) *token {
	return &token{
		kind: tokenKindChar,
		text: text,
		char: c,
		span: span,
	}
}

func newStringToken(text string, span source.Span) *token {
	return &token{
		kind: tokenKindString,
		text: text,
		span: span,
	}
}

func newEOFToken(pos source.Position) *token {
	return &token{
		kind: tokenKindEOF,
		span: source.PointSpan(pos),
	}
}

func newInvalidToken(text string, span source.Span) *token {
	return &token{
		kind: tokenKindInvalid,
		text: text,
		span: span,
	}
}

func (t *token) String() string {
	switch t.kind {
	case tokenKindEOF:
		return "end of file"
	case tokenKindInvalid:
		return fmt.Sprintf("%q", t.text)
	}
	if t.text == "" {
		return string(t.kind)
	}
	return fmt.Sprintf("%v %q", t.kind, t.text)
}

var lexEntries = []*mlspec.LexEntry{
	{Kind: "white_space", Pattern: `[\u{0009}\u{0020}]+`},
	{Kind: "newline", Pattern: `\u{000A}|\u{000D}|\u{000D}\u{000A}`},
	{Kind: "identifier", Pattern: `[A-Za-z_][0-9A-Za-z_]*`},
	{Kind: "key_count", Pattern: `[0-9]+k`},
	{Kind: "space_count", Pattern: `[0-9]+s`},
	{Kind: "integer", Pattern: `[0-9]+`},
	{Kind: "char_literal", Pattern: `'[^\u{000A}\u{000D}]'`},
	{Kind: "string_literal", Pattern: `"([^"\\\u{000A}\u{000D}]|\\[^\u{000A}\u{000D}])*"`},
	{Kind: "l_brace", Pattern: mlspec.LexPattern(mlspec.EscapePattern("{"))},
	{Kind: "r_brace", Pattern: mlspec.LexPattern(mlspec.EscapePattern("}"))},
	{Kind: "l_bracket", Pattern: mlspec.LexPattern(mlspec.EscapePattern("["))},
	{Kind: "r_bracket", Pattern: mlspec.LexPattern(mlspec.EscapePattern("]"))},
	{Kind: "semicolon", Pattern: mlspec.LexPattern(mlspec.EscapePattern(";"))},
	{Kind: "colon", Pattern: mlspec.LexPattern(mlspec.EscapePattern(":"))},
	{Kind: "at", Pattern: mlspec.LexPattern(mlspec.EscapePattern("@"))},
	{Kind: "at_tilde", Pattern: mlspec.LexPattern(mlspec.EscapePattern("@~"))},
	{Kind: "chord_open", Pattern: mlspec.LexPattern(mlspec.EscapePattern(">"))},
	{Kind: "chord_close", Pattern: mlspec.LexPattern(mlspec.EscapePattern("<"))},
}

var symbolKinds = map[string]tokenKind{
	"l_brace":     tokenKindLBrace,
	"r_brace":     tokenKindRBrace,
	"l_bracket":   tokenKindLBracket,
	"r_bracket":   tokenKindRBracket,
	"semicolon":   tokenKindSemicolon,
	"colon":       tokenKindColon,
	"at":          tokenKindAt,
	"at_tilde":    tokenKindAtTilde,
	"chord_open":  tokenKindChordOpen,
	"chord_close": tokenKindChordClose,
}

var (
	compiledLexSpec    *mlspec.CompiledLexSpec
	compiledLexSpecErr error
	compileLexSpecOnce sync.Once
)

// lexSpec compiles the lexical specification the first time it is needed.
func lexSpec() (*mlspec.CompiledLexSpec, error) {
	compileLexSpecOnce.Do(func() {
		s, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
			Name:    "kbdl",
			Entries: lexEntries,
		}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				for i, cErr := range cErrs {
					if i > 0 {
						b.WriteString("\n")
					}
					fmt.Fprintf(&b, "%v: %v", cErr.Kind, cErr.Cause)
					if cErr.Detail != "" {
						fmt.Fprintf(&b, ": %v", cErr.Detail)
					}
				}
				err = fmt.Errorf("cannot compile the lexical specification: %v", b.String())
			}
			compiledLexSpecErr = err
			return
		}
		compiledLexSpec = s
	})
	return compiledLexSpec, compiledLexSpecErr
}

type lexer struct {
	s       *mlspec.CompiledLexSpec
	d       *mldriver.Lexer
	lastPos source.Position
}

func newLexer(src io.Reader) (*lexer, error) {
	s, err := lexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		s:       s,
		d:       d,
		lastPos: source.NewPosition(1, 1),
	}, nil
}

func (l *lexer) next() (*token, error) {
	var tok *mldriver.Token
	for {
		var err error
		tok, err = l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return newEOFToken(l.lastPos), nil
		}

		text := string(tok.Lexeme)
		from := source.NewPosition(tok.Row+1, tok.Col+1)
		span := source.NewSpan(from, source.NewPosition(tok.Row+1, tok.Col+1+utf8.RuneCountInString(text)))
		l.lastPos = span.To
		if tok.Invalid {
			return newInvalidToken(text, span), nil
		}

		kind := l.s.KindNames[tok.KindID].String()
		switch kind {
		case "white_space", "newline":
			if kind == "newline" {
				l.lastPos = source.NewPosition(tok.Row+2, 1)
			}
			continue
		case "identifier":
			return newIDToken(text, span), nil
		case "key_count", "space_count":
			num, err := strconv.Atoi(text[:len(text)-1])
			if err != nil {
				return nil, &verr.SpecError{
					Cause:  synErrInvalidNumber,
					Detail: text,
					Span:   span,
				}
			}
			k := tokenKindKeyCount
			if kind == "space_count" {
				k = tokenKindSpaceCount
			}
			return newNumberToken(k, text, num, span), nil
		case "integer":
			num, err := strconv.Atoi(text)
			if err != nil {
				return nil, &verr.SpecError{
					Cause:  synErrInvalidNumber,
					Detail: text,
					Span:   span,
				}
			}
			return newNumberToken(tokenKindInt, text, num, span), nil
		case "char_literal":
			c, _ := utf8.DecodeRuneInString(text[1:])
			return newCharToken(text, c, span), nil
		case "string_literal":
			return newStringToken(unquote(text), span), nil
		}

		if k, ok := symbolKinds[kind]; ok {
			return newSymbolToken(k, text, span), nil
		}
		return newInvalidToken(text, span), nil
	}
}

// unquote removes the surrounding double quotes and resolves backslash escapes.
func unquote(lit string) string {
	body := lit[1 : len(lit)-1]
	if !strings.Contains(body, `\`) {
		return body
	}
	var b strings.Builder
	escaped := false
	for _, c := range body {
		if !escaped && c == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(c)
	}
	return b.String()
}
