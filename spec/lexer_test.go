package spec

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/kbdl/kbdl/error"
	"github.com/stretchr/testify/require"
)

func TestLexer_Run(t *testing.T) {
	type tokenSummary struct {
		kind tokenKind
		text string
		num  int
		char rune
	}

	idTok := func(text string) tokenSummary {
		return tokenSummary{kind: tokenKindID, text: text}
	}
	numTok := func(kind tokenKind, text string, num int) tokenSummary {
		return tokenSummary{kind: kind, text: text, num: num}
	}
	charTok := func(text string, c rune) tokenSummary {
		return tokenSummary{kind: tokenKindChar, text: text, char: c}
	}
	strTok := func(text string) tokenSummary {
		return tokenSummary{kind: tokenKindString, text: text}
	}
	symTok := func(kind tokenKind) tokenSummary {
		return tokenSummary{kind: kind, text: string(kind)}
	}
	eofTok := tokenSummary{kind: tokenKindEOF}

	tests := []struct {
		caption string
		src     string
		tokens  []tokenSummary
		err     error
	}{
		{
			caption: "the lexer can recognize all kinds of symbols",
			src:     `{}[];:@@~><`,
			tokens: []tokenSummary{
				symTok(tokenKindLBrace),
				symTok(tokenKindRBrace),
				symTok(tokenKindLBracket),
				symTok(tokenKindRBracket),
				symTok(tokenKindSemicolon),
				symTok(tokenKindColon),
				symTok(tokenKindAt),
				symTok(tokenKindAtTilde),
				symTok(tokenKindChordOpen),
				symTok(tokenKindChordClose),
				eofTok,
			},
		},
		{
			caption: "the lexer can recognize layout items",
			src:     "5k 2s [12] 10k",
			tokens: []tokenSummary{
				numTok(tokenKindKeyCount, "5k", 5),
				numTok(tokenKindSpaceCount, "2s", 2),
				symTok(tokenKindLBracket),
				numTok(tokenKindInt, "12", 12),
				symTok(tokenKindRBracket),
				numTok(tokenKindKeyCount, "10k", 10),
				eofTok,
			},
		},
		{
			caption: "the lexer can recognize identifiers, characters and strings",
			src:     `esc f10 'a' ';' "b" "a \"quoted\" \\ text"`,
			tokens: []tokenSummary{
				idTok("esc"),
				idTok("f10"),
				charTok(`'a'`, 'a'),
				charTok(`';'`, ';'),
				strTok("b"),
				strTok(`a "quoted" \ text`),
				eofTok,
			},
		},
		{
			caption: "the lexer skips white spaces and newlines",
			src:     "layer\n\tbase\r\n{ }",
			tokens: []tokenSummary{
				idTok("layer"),
				idTok("base"),
				symTok(tokenKindLBrace),
				symTok(tokenKindRBrace),
				eofTok,
			},
		},
		{
			caption: "the lexer reports an invalid token as a token",
			src:     "a ! b",
			tokens: []tokenSummary{
				idTok("a"),
				{kind: tokenKindInvalid, text: "!"},
				idTok("b"),
				eofTok,
			},
		},
		{
			caption: "a count that does not fit into an int is an error",
			src:     "99999999999999999999999k",
			err:     synErrInvalidNumber,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			l, err := newLexer(strings.NewReader(tt.src))
			require.NoError(t, err)

			var actual []tokenSummary
			for {
				tok, err := l.next()
				if tt.err != nil {
					if err == nil {
						if tok.kind == tokenKindEOF {
							t.Fatalf("an expected error didn't occur: %v", tt.err)
						}
						continue
					}
					var specErr *verr.SpecError
					require.True(t, errors.As(err, &specErr))
					require.Equal(t, tt.err, specErr.Cause)
					return
				}
				require.NoError(t, err)
				actual = append(actual, tokenSummary{
					kind: tok.kind,
					text: tok.text,
					num:  tok.num,
					char: tok.char,
				})
				if tok.kind == tokenKindEOF {
					break
				}
			}
			require.Equal(t, tt.tokens, actual)
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	l, err := newLexer(strings.NewReader("layout {\n  2k;\n}"))
	require.NoError(t, err)

	tok, err := l.next()
	require.NoError(t, err)
	require.Equal(t, "1:1-1:7", tok.span.String())

	tok, err = l.next()
	require.NoError(t, err)
	require.Equal(t, "1:8-1:9", tok.span.String())

	tok, err = l.next()
	require.NoError(t, err)
	require.Equal(t, tokenKindKeyCount, tok.kind)
	require.Equal(t, "2:3-2:5", tok.span.String())
}
