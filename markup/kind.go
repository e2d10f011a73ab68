package markup

// Kind identifies the markup a span or node was built from.
type Kind int

const (
	KindPlainText Kind = iota
	KindCodeBlock
	KindInlineCodeBlock
	KindTable
	KindNumberedList
	KindBulletList
	KindQuote
	KindHeader
	KindBold
	KindItalic
	KindInlineCode
	KindLink
)

var kindNames = map[Kind]string{
	KindPlainText:       "text",
	KindCodeBlock:       "codeblock",
	KindInlineCodeBlock: "inlinecodeblock",
	KindTable:           "table",
	KindNumberedList:    "numberedlist",
	KindBulletList:      "bulletlist",
	KindQuote:           "quote",
	KindHeader:          "header",
	KindBold:            "bold",
	KindItalic:          "italic",
	KindInlineCode:      "inlinecode",
	KindLink:            "link",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is one of the kinds a catalog rule may detect.
// PlainText is never detected; it fills the gaps between spans.
func (k Kind) Valid() bool {
	return k > KindPlainText && k <= KindLink
}
