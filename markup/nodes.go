package markup

// Pos locates a node in the parsed input. Start and End are rune offsets and
// Raw is the exact source text, delimiters included.
type Pos struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Raw   string `json:"raw"`
}

// Position returns p. It lets every node expose its source range through
// the embedded Pos.
func (p Pos) Position() Pos { return p }

// Node is one element of a parsed message. The set of implementations is
// closed: one struct per Kind, all defined in this package.
type Node interface {
	Kind() Kind
	Position() Pos
	node()
}

// PlainText is literal text between (or instead of) markup spans. Text is
// never trimmed.
type PlainText struct {
	Pos
	Text string `json:"text"`
}

// CodeBlock is a fenced block. Language is "text" when the fence had none.
type CodeBlock struct {
	Pos
	Language string `json:"language"`
	Code     string `json:"code"`
}

// InlineCodeBlock is a fenced block written on a single line.
type InlineCodeBlock struct {
	Pos
	Language string `json:"language"`
	Code     string `json:"code"`
}

type Table struct {
	Pos
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// ListItem is one line of a numbered or bullet list. Ordinal is the
// position in the list starting at 1, regardless of the source numbering.
// Task is set for bullet items with a [ ] or [x] checkbox.
type ListItem struct {
	Ordinal int    `json:"ordinal"`
	Text    string `json:"text"`
	Task    bool   `json:"task,omitempty"`
	Checked bool   `json:"checked,omitempty"`
}

type NumberedList struct {
	Pos
	Items []ListItem `json:"items"`
}

type BulletList struct {
	Pos
	Items []ListItem `json:"items"`
}

type Quote struct {
	Pos
	Text string `json:"text"`
}

// Header has a Level between 1 and 6.
type Header struct {
	Pos
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type Bold struct {
	Pos
	Text string `json:"text"`
}

type Italic struct {
	Pos
	Text string `json:"text"`
}

type InlineCode struct {
	Pos
	Text string `json:"text"`
}

// Link is a bare URL. Label is the URL host, or the URL itself when it does
// not parse.
type Link struct {
	Pos
	URL   string `json:"url"`
	Label string `json:"label"`
}

func (PlainText) Kind() Kind       { return KindPlainText }
func (CodeBlock) Kind() Kind       { return KindCodeBlock }
func (InlineCodeBlock) Kind() Kind { return KindInlineCodeBlock }
func (Table) Kind() Kind           { return KindTable }
func (NumberedList) Kind() Kind    { return KindNumberedList }
func (BulletList) Kind() Kind      { return KindBulletList }
func (Quote) Kind() Kind           { return KindQuote }
func (Header) Kind() Kind          { return KindHeader }
func (Bold) Kind() Kind            { return KindBold }
func (Italic) Kind() Kind          { return KindItalic }
func (InlineCode) Kind() Kind      { return KindInlineCode }
func (Link) Kind() Kind            { return KindLink }

func (PlainText) node()       {}
func (CodeBlock) node()       {}
func (InlineCodeBlock) node() {}
func (Table) node()           {}
func (NumberedList) node()    {}
func (BulletList) node()      {}
func (Quote) node()           {}
func (Header) node()          {}
func (Bold) node()            {}
func (Italic) node()          {}
func (InlineCode) node()      {}
func (Link) node()            {}
