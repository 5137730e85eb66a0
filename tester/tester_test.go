package tester

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbdl/kbdl/driver"
	"github.com/kbdl/kbdl/keymap"
	"github.com/stretchr/testify/require"
)

func TestParseTestCase(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		expected *TestCase
		error    bool
	}{
		{
			caption: "an output case",
			src: `
Two keys
---
layout { 2k; }
layer base { 'a' 'b'; }
--- format
layout {
    2k;
}
`,
			expected: &TestCase{
				Description: "Two keys",
				Source:      []byte("layout { 2k; }\nlayer base { 'a' 'b'; }"),
				Target:      driver.TargetFormat,
				Expected:    "layout {\n    2k;\n}",
			},
		},
		{
			caption: "an error case",
			src: `Unknown key
-----
layout { 1k; }
----- error
  unknown key
`,
			expected: &TestCase{
				Description: "Unknown key",
				Source:      []byte("layout { 1k; }"),
				ExpectError: true,
				Expected:    "unknown key",
			},
		},
		{
			caption: "the last delimiter needs a kind",
			src:     "Test\n---\nlayout { 1k; }\n---\nx",
			error:   true,
		},
		{
			caption: "an unknown kind",
			src:     "Test\n---\nlayout { 1k; }\n--- keyberon\nx",
			error:   true,
		},
		{
			caption: "the source delimiter takes no kind",
			src:     "Test\n--- format\nlayout { 1k; }\n--- format\nx",
			error:   true,
		},
		{
			caption: "too few parts",
			src:     "Test\n---\nlayout { 1k; }",
			error:   true,
		},
		{
			caption: "too many parts",
			src:     "Test\n---\nlayout { 1k; }\n--- format\nx\n---\ny",
			error:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := ParseTestCase(strings.NewReader(tt.src))
			if tt.error {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, c)
		})
	}
}

func TestTester_Run(t *testing.T) {
	tests := []struct {
		caption string
		testSrc string
		error   bool
	}{
		{
			caption: "formatted output matches",
			testSrc: `
Test
---
layout {  2k ; }
layer base { 'a'   'b'; }
--- format
layout {
    2k;
}

layer base {
    'a' 'b';
}
`,
		},
		{
			caption: "formatted output differs",
			testSrc: `
Test
---
layout { 2k; }
layer base { 'a' 'b'; }
--- format
layout {
    2k;
}

layer base {
    'b' 'a';
}
`,
			error: true,
		},
		{
			caption: "firmware output is compared as a whole",
			testSrc: `
Test
---
layout { 2k; }
layer base { 'a' 'b'; }
--- firmware
#[rustfmt::skip]
`,
			error: true,
		},
		{
			caption: "the expected error occurs",
			testSrc: `
Test
---
layout { 2k; }
layer base { 'a' spac; }
--- error
unknown key
`,
		},
		{
			caption: "an error was expected",
			testSrc: `
Test
---
layout { 2k; }
layer base { 'a' space; }
--- error
unknown key
`,
			error: true,
		},
		{
			caption: "another error occurs",
			testSrc: `
Test
---
layout { 2k; }
layer base { 'a' 'b' 'c'; }
--- error
unknown key
`,
			error: true,
		},
		{
			caption: "an unexpected error",
			testSrc: `
Test
---
layout { 2k; }
layer base { 'a' [nav]; }
--- format
layout {
    2k;
}
`,
			error: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := ParseTestCase(strings.NewReader(tt.testSrc))
			require.NoError(t, err)
			tester := &Tester{
				Cases: []*TestCaseWithMetadata{
					{
						TestCase: c,
						FilePath: "test.kbdl",
					},
				},
			}
			rs := tester.Run()
			require.Len(t, rs, 1)
			if tt.error {
				require.Error(t, rs[0].Error, "this test must fail, but it passed")
				require.True(t, strings.HasPrefix(rs[0].String(), "Failed test.kbdl:"))
				return
			}
			require.NoError(t, rs[0].Error)
			require.Equal(t, "Passed test.kbdl", rs[0].String())
		})
	}
}

func TestTester_RunWithOptions(t *testing.T) {
	tester := &Tester{
		Cases: []*TestCaseWithMetadata{
			{
				TestCase: &TestCase{
					Description: "Test",
					Source:      []byte("layout { 2k; }\nlayer base { 'a' 'b'; }"),
					Target:      driver.TargetDiagram,
					Expected:    "layout:",
				},
				FilePath: "test.kbdl",
			},
		},
	}
	rs := tester.Run()
	require.Error(t, rs[0].Error)
	require.Contains(t, rs[0].Error.Error(), "keyboard")
	require.Empty(t, rs[0].Diff)

	tester.Options = []keymap.ResolveOption{
		keymap.WithDefaultOptions(map[keymap.Backend]map[string]string{
			keymap.BackendDiagram: {
				"keyboard": "corne",
			},
		}),
	}
	rs = tester.Run()
	require.Error(t, rs[0].Error)
	require.Equal(t, "output mismatch", rs[0].Error.Error())
	require.NotEmpty(t, rs[0].Diff)
}

func TestListTestCases(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("a.txt", "A\n---\nlayout { 1k; }\n--- error\nx\n")
	write(filepath.Join("sub", "b.txt"), "B\n---\nlayout { 1k; }\n--- format\nx\n")
	write("broken.txt", "no delimiters")

	cs := ListTestCases(dir)
	require.Len(t, cs, 3)

	byName := map[string]*TestCaseWithMetadata{}
	for _, c := range cs {
		rel, err := filepath.Rel(dir, c.FilePath)
		require.NoError(t, err)
		byName[filepath.ToSlash(rel)] = c
	}
	require.NoError(t, byName["a.txt"].Error)
	require.Equal(t, "A", byName["a.txt"].TestCase.Description)
	require.NoError(t, byName["sub/b.txt"].Error)
	require.Equal(t, driver.TargetFormat, byName["sub/b.txt"].TestCase.Target)
	require.Error(t, byName["broken.txt"].Error)

	missing := ListTestCases(filepath.Join(dir, "missing"))
	require.Len(t, missing, 1)
	require.Error(t, missing[0].Error)
}
