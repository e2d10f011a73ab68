package markup

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Node
	}{
		{
			name:  "Simple sentence",
			input: "hello world",
			want:  []Node{PlainText{Pos: Pos{Start: 0, End: 11, Raw: "hello world"}, Text: "hello world"}},
		},
		{
			name:  "Keeps surrounding whitespace",
			input: "  padded\n",
			want:  []Node{PlainText{Pos: Pos{Start: 0, End: 9, Raw: "  padded\n"}, Text: "  padded\n"}},
		},
		{
			name:  "Empty",
			input: "",
			want:  nil,
		},
		{
			name:  "Blank",
			input: " \n\t \n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParseCodeBlock(t *testing.T) {
	nodes := Parse("``` js\nconsole.log(1)\n```")
	require.Len(t, nodes, 1)
	block, ok := nodes[0].(CodeBlock)
	require.True(t, ok, "expected CodeBlock, got %T", nodes[0])
	assert.Equal(t, "js", block.Language)
	assert.Equal(t, "console.log(1)", block.Code)
}

func TestParseCodeBlockVariants(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLang string
		wantCode string
	}{
		{name: "No language", input: "```\nfoo()\n```", wantLang: "text", wantCode: "foo()"},
		{name: "Language tag", input: "```go\nfunc main() {}\n```", wantLang: "go", wantCode: "func main() {}"},
		{name: "Empty fence", input: "```\n```", wantLang: "text", wantCode: ""},
		{name: "Code on the fence line", input: "```print(1)\nprint(2)```", wantLang: "text", wantCode: "print(1)\nprint(2)"},
		{name: "Pipes and lists inside", input: "```sh\n- a | b\n1. c\n```", wantLang: "sh", wantCode: "- a | b\n1. c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Parse(tt.input)
			require.Len(t, nodes, 1)
			block, ok := nodes[0].(CodeBlock)
			require.True(t, ok, "expected CodeBlock, got %T", nodes[0])
			assert.Equal(t, tt.wantLang, block.Language)
			assert.Equal(t, tt.wantCode, block.Code)
		})
	}
}

func TestParseInlineCodeBlock(t *testing.T) {
	nodes := Parse("run ```ls -la``` first")
	require.Len(t, nodes, 3)
	block, ok := nodes[1].(InlineCodeBlock)
	require.True(t, ok, "expected InlineCodeBlock, got %T", nodes[1])
	assert.Equal(t, "text", block.Language)
	assert.Equal(t, "ls -la", block.Code)
}

func TestParseSeveralFences(t *testing.T) {
	type fence struct {
		language string
		code     string
	}
	tests := []struct {
		name   string
		input  string
		kinds  []Kind
		fences []fence
	}{
		{
			name:   "Single-line fences on nearby lines",
			input:  "Run ```ls``` then\nmore text ```rm``` end",
			kinds:  []Kind{KindPlainText, KindInlineCodeBlock, KindPlainText, KindInlineCodeBlock, KindPlainText},
			fences: []fence{{"text", "ls"}, {"text", "rm"}},
		},
		{
			name:   "Single-line fences on adjacent lines",
			input:  "```a```\n```b```",
			kinds:  []Kind{KindInlineCodeBlock, KindInlineCodeBlock},
			fences: []fence{{"text", "a"}, {"text", "b"}},
		},
		{
			name:   "Single-line fence then a block",
			input:  "```a``` and\n```go\nx\n```",
			kinds:  []Kind{KindInlineCodeBlock, KindPlainText, KindCodeBlock},
			fences: []fence{{"text", "a"}, {"go", "x"}},
		},
		{
			name:   "Two blocks",
			input:  "```go\na := 1\n```\nthen\n```py\nprint(1)\n```",
			kinds:  []Kind{KindCodeBlock, KindPlainText, KindCodeBlock},
			fences: []fence{{"go", "a := 1"}, {"py", "print(1)"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Parse(tt.input)
			var (
				kinds  []Kind
				fences []fence
			)
			for _, n := range nodes {
				kinds = append(kinds, n.Kind())
				switch n := n.(type) {
				case CodeBlock:
					fences = append(fences, fence{n.Language, n.Code})
				case InlineCodeBlock:
					fences = append(fences, fence{n.Language, n.Code})
				}
			}
			assert.Equal(t, tt.kinds, kinds)
			assert.Equal(t, tt.fences, fences)
		})
	}
}

func TestParseCodeBlockLanguageIsASCII(t *testing.T) {
	nodes := Parse("```héllo\nx\n```")
	require.Len(t, nodes, 1)
	block, ok := nodes[0].(CodeBlock)
	require.True(t, ok, "expected CodeBlock, got %T", nodes[0])
	assert.Equal(t, "text", block.Language)
}

func TestParseBoldAndItalic(t *testing.T) {
	nodes := Parse("**bold** and *italic*")
	want := []Node{
		Bold{Pos: Pos{Start: 0, End: 8, Raw: "**bold**"}, Text: "bold"},
		PlainText{Pos: Pos{Start: 8, End: 13, Raw: " and "}, Text: " and "},
		Italic{Pos: Pos{Start: 13, End: 21, Raw: "*italic*"}, Text: "italic"},
	}
	assert.Equal(t, want, nodes)
}

func TestParseTripleAsterisk(t *testing.T) {
	nodes := Parse("***both***")
	require.Len(t, nodes, 2)
	assert.Equal(t, Bold{Pos: Pos{Start: 0, End: 9, Raw: "***both**"}, Text: "*both"}, nodes[0])
	assert.Equal(t, PlainText{Pos: Pos{Start: 9, End: 10, Raw: "*"}, Text: "*"}, nodes[1])
}

func TestParseNumberedList(t *testing.T) {
	nodes := Parse("1. a\n2. b")
	require.Len(t, nodes, 1)
	list, ok := nodes[0].(NumberedList)
	require.True(t, ok, "expected NumberedList, got %T", nodes[0])
	assert.Equal(t, []ListItem{{Ordinal: 1, Text: "a"}, {Ordinal: 2, Text: "b"}}, list.Items)
}

func TestParseNumberedListRenumbers(t *testing.T) {
	nodes := Parse("7. seven\n3. three\n10. ten")
	require.Len(t, nodes, 1)
	list := nodes[0].(NumberedList)
	assert.Equal(t, []ListItem{
		{Ordinal: 1, Text: "seven"},
		{Ordinal: 2, Text: "three"},
		{Ordinal: 3, Text: "ten"},
	}, list.Items)
}

func TestParseTaskList(t *testing.T) {
	nodes := Parse("- [x] done\n- [ ] todo")
	require.Len(t, nodes, 1)
	list, ok := nodes[0].(BulletList)
	require.True(t, ok, "expected BulletList, got %T", nodes[0])
	assert.Equal(t, []ListItem{
		{Ordinal: 1, Text: "done", Task: true, Checked: true},
		{Ordinal: 2, Text: "todo", Task: true},
	}, list.Items)
}

func TestParseBulletList(t *testing.T) {
	nodes := Parse("* one\n+ two\n- [X] three")
	require.Len(t, nodes, 1)
	list := nodes[0].(BulletList)
	assert.Equal(t, []ListItem{
		{Ordinal: 1, Text: "one"},
		{Ordinal: 2, Text: "two"},
		{Ordinal: 3, Text: "three", Task: true, Checked: true},
	}, list.Items)
}

func TestParseTable(t *testing.T) {
	nodes := Parse("| a | b |\n|---|---|\n| 1 | 2 |")
	require.Len(t, nodes, 1)
	table, ok := nodes[0].(Table)
	require.True(t, ok, "expected Table, got %T", nodes[0])
	assert.Equal(t, []string{"a", "b"}, table.Headers)
	assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)
}

func TestParseTableDegradesToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "No separator row", input: "a | b\nc | d"},
		{name: "Single line", input: "x | y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Parse(tt.input)
			require.Len(t, nodes, 1)
			text, ok := nodes[0].(PlainText)
			require.True(t, ok, "expected PlainText, got %T", nodes[0])
			assert.Equal(t, tt.input, text.Text)
		})
	}
}

func TestParseTableFollowedByText(t *testing.T) {
	nodes := Parse("| h |\n|---|\n| v |\nafter")
	require.Len(t, nodes, 2)
	table := nodes[0].(Table)
	assert.Equal(t, []string{"h"}, table.Headers)
	assert.Equal(t, [][]string{{"v"}}, table.Rows)
	assert.Equal(t, "after", nodes[1].(PlainText).Text)
}

func TestParseQuote(t *testing.T) {
	nodes := Parse("> first\n> second")
	require.Len(t, nodes, 1)
	assert.Equal(t, "first\nsecond", nodes[0].(Quote).Text)
}

func TestParseQuoteCRLF(t *testing.T) {
	nodes := Parse("> first\r\n> second")
	require.Len(t, nodes, 1)
	assert.Equal(t, "first\nsecond", nodes[0].(Quote).Text)
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLevel int
		wantText  string
	}{
		{name: "Level 1", input: "# Title", wantLevel: 1, wantText: "Title"},
		{name: "Level 3", input: "### Sub title", wantLevel: 3, wantText: "Sub title"},
		{name: "Level 6", input: "###### Deep", wantLevel: 6, wantText: "Deep"},
		{name: "Extra space kept", input: "##  Spaced", wantLevel: 2, wantText: " Spaced"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := Parse(tt.input)
			require.Len(t, nodes, 1)
			header, ok := nodes[0].(Header)
			require.True(t, ok, "expected Header, got %T", nodes[0])
			assert.Equal(t, tt.wantLevel, header.Level)
			assert.Equal(t, tt.wantText, header.Text)
		})
	}
}

func TestParseSevenHashesIsText(t *testing.T) {
	nodes := Parse("####### nope")
	require.Len(t, nodes, 1)
	assert.Equal(t, KindPlainText, nodes[0].Kind())
}

func TestParseHeaderThenBody(t *testing.T) {
	nodes := Parse("## Title\nbody")
	require.Len(t, nodes, 2)
	assert.Equal(t, "Title", nodes[0].(Header).Text)
	assert.Equal(t, "\nbody", nodes[1].(PlainText).Text)
}

func TestParseInlineCode(t *testing.T) {
	nodes := Parse("run `go test` now")
	require.Len(t, nodes, 3)
	assert.Equal(t, "run ", nodes[0].(PlainText).Text)
	assert.Equal(t, "go test", nodes[1].(InlineCode).Text)
	assert.Equal(t, " now", nodes[2].(PlainText).Text)
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantURL   string
		wantLabel string
	}{
		{name: "Host label", input: "see https://example.com/path?q=1 now", wantURL: "https://example.com/path?q=1", wantLabel: "example.com"},
		{name: "Port dropped from label", input: "http://localhost:8080/x", wantURL: "http://localhost:8080/x", wantLabel: "localhost"},
		{name: "Stops at quote", input: `open "https://go.dev" please`, wantURL: "https://go.dev", wantLabel: "go.dev"},
		{name: "Unparseable falls back", input: "https://%zz", wantURL: "https://%zz", wantLabel: "https://%zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var link *Link
			for _, n := range Parse(tt.input) {
				if l, ok := n.(Link); ok {
					link = &l
				}
			}
			require.NotNil(t, link)
			assert.Equal(t, tt.wantURL, link.URL)
			assert.Equal(t, tt.wantLabel, link.Label)
		})
	}
}

func TestParseEveryCatalogKind(t *testing.T) {
	samples := map[Kind]string{
		KindCodeBlock:       "```go\nx\n```",
		KindInlineCodeBlock: "```x```",
		KindTable:           "|a|\n|-|",
		KindNumberedList:    "1. x",
		KindBulletList:      "- x",
		KindQuote:           "> x",
		KindHeader:          "# x",
		KindBold:            "**x**",
		KindItalic:          "*x*",
		KindInlineCode:      "`x`",
		KindLink:            "http://x.io",
	}

	for _, kind := range DefaultCatalog().Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			sample, ok := samples[kind]
			require.True(t, ok, "no sample for %s", kind)
			nodes := Parse(sample)
			require.Len(t, nodes, 1)
			assert.Equal(t, kind, nodes[0].Kind())
		})
	}
}

func TestParsePositionsCoverInput(t *testing.T) {
	inputs := []string{
		"Intro **b** mid `c` end\n\n- x\n- y\n\nbye https://a.io",
		"héllo **wörld** and *ünïcode*",
		"# Head\n> quote\n| a | b |\n|---|---|\n| 1 | 2 |\n\n```py\nprint('x')\n```\ntrailing",
		"1. one\n2. two\n\n*em* **strong** `code` http://x.y/z",
	}

	for _, input := range inputs {
		t.Run(input[:6], func(t *testing.T) {
			runes := []rune(input)
			cursor := 0
			for _, n := range Parse(input) {
				pos := n.Position()
				require.GreaterOrEqual(t, pos.Start, cursor, "nodes overlap or are out of order")
				require.Less(t, pos.Start, pos.End)
				assert.Empty(t, strings.TrimSpace(string(runes[cursor:pos.Start])), "non-blank text was dropped")
				assert.Equal(t, string(runes[pos.Start:pos.End]), pos.Raw)
				cursor = pos.End
			}
			assert.Empty(t, strings.TrimSpace(string(runes[cursor:])), "non-blank tail was dropped")
		})
	}
}

func TestParseRuneOffsets(t *testing.T) {
	nodes := Parse("héllo **wörld**")
	require.Len(t, nodes, 2)
	assert.Equal(t, Pos{Start: 6, End: 15, Raw: "**wörld**"}, nodes[1].Position())
	assert.Equal(t, "wörld", nodes[1].(Bold).Text)
}

func TestParseIsIdempotent(t *testing.T) {
	input := "# T\n\nSome **bold**, *it*, `code`.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n- [ ] task\n\nhttps://example.com"
	assert.Equal(t, Parse(input), Parse(input))
}

func TestParserMaxRunes(t *testing.T) {
	p := NewParser(WithMaxRunes(5))
	nodes := p.Parse("**bold** text")
	require.Len(t, nodes, 1)
	assert.Equal(t, "**bold** text", nodes[0].(PlainText).Text)

	unlimited := NewParser(WithMaxRunes(0))
	assert.Equal(t, KindBold, unlimited.Parse("**bold** text")[0].Kind())
}

func TestParserWithCatalog(t *testing.T) {
	catalog := MustCatalog(DefaultMatchTimeout, RuleSpec{Kind: KindBold, Expr: `__(.+?)__`})
	p := NewParser(WithCatalog(catalog))
	nodes := p.Parse("__under__ **star**")
	require.Len(t, nodes, 2)
	assert.Equal(t, "under", nodes[0].(Bold).Text)
	assert.Equal(t, " **star**", nodes[1].(PlainText).Text)
}

func TestMarshalNodes(t *testing.T) {
	data, err := MarshalNodes(Parse("**b** then https://go.dev"))
	require.NoError(t, err)

	var decoded []struct {
		Kind string          `json:"kind"`
		Node json.RawMessage `json:"node"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "bold", decoded[0].Kind)
	assert.Equal(t, "text", decoded[1].Kind)
	assert.Equal(t, "link", decoded[2].Kind)
	assert.Contains(t, string(decoded[2].Node), `"label": "go.dev"`)
}
