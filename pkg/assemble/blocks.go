// Package assemble turns a validated snapshot into the ordered block
// sequence of the term sheet document: title, front-matter table,
// recitals, static sections, conditional sections in fixed priority
// order, then the signature block.
package assemble

// BlockKind tags the union of document block variants.
type BlockKind int

const (
	KindHeading BlockKind = iota
	KindParagraph
	KindTable
)

// Row is one label/value pair of a table block.
type Row struct {
	Label string
	Value string
}

// Block is one heading, paragraph or table unit of the generated
// output. Blocks exist only transiently during one generation call.
type Block struct {
	Kind    BlockKind
	Text    string // heading and paragraph text
	Level   int    // heading level, 1 is the document title
	Style   string // paragraph style hint ("", "emphasis", "signature")
	Caption string // table caption
	Rows    []Row
}

// Heading builds a heading block.
func Heading(text string, level int) Block {
	return Block{Kind: KindHeading, Text: text, Level: level}
}

// Paragraph builds a plain paragraph block.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// StyledParagraph builds a paragraph carrying a style hint.
func StyledParagraph(style, text string) Block {
	return Block{Kind: KindParagraph, Text: text, Style: style}
}

// Table builds a table block from label/value rows.
func Table(caption string, rows ...Row) Block {
	return Block{Kind: KindTable, Caption: caption, Rows: rows}
}
