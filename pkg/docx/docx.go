// Package docx serializes an assembled block sequence into a minimal,
// valid Office Open XML word-processing package. Only the parts the
// term sheet needs are emitted: the main document, a small style set
// for headings, and the packaging plumbing.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/dealdocs/termsheet/pkg/assemble"
)

// Write serializes blocks as a .docx package onto w. Any internal
// failure aborts the write; callers must not offer partially written
// output for download.
func Write(w io.Writer, blocks []assemble.Block) error {
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", documentXML(blocks)},
	}
	for _, part := range parts {
		f, err := archive.Create(part.name)
		if err != nil {
			return fmt.Errorf("docx: create part %s: %w", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			return fmt.Errorf("docx: write part %s: %w", part.name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return fmt.Errorf("docx: finalize package: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("docx: write output: %w", err)
	}
	return nil
}

func documentXML(blocks []assemble.Block) string {
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, block := range blocks {
		switch block.Kind {
		case assemble.KindHeading:
			writeHeading(&b, block)
		case assemble.KindTable:
			writeTable(&b, block)
		default:
			writeParagraph(&b, block)
		}
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/></w:sectPr>`)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeHeading(b *bytes.Buffer, block assemble.Block) {
	style := "Heading2"
	if block.Level <= 1 {
		style = "Title"
	}
	fmt.Fprintf(b, `<w:p><w:pPr><w:pStyle w:val="%s"/></w:pPr>`, style)
	writeRun(b, block.Text, "")
	b.WriteString(`</w:p>`)
}

func writeParagraph(b *bytes.Buffer, block assemble.Block) {
	b.WriteString(`<w:p>`)
	writeRun(b, block.Text, block.Style)
	b.WriteString(`</w:p>`)
}

func writeTable(b *bytes.Buffer, block assemble.Block) {
	if block.Caption != "" {
		b.WriteString(`<w:p>`)
		writeRun(b, block.Caption, "emphasis")
		b.WriteString(`</w:p>`)
	}
	b.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/><w:tblBorders>` +
		`<w:top w:val="single" w:sz="4" w:color="auto"/>` +
		`<w:left w:val="single" w:sz="4" w:color="auto"/>` +
		`<w:bottom w:val="single" w:sz="4" w:color="auto"/>` +
		`<w:right w:val="single" w:sz="4" w:color="auto"/>` +
		`<w:insideH w:val="single" w:sz="4" w:color="auto"/>` +
		`<w:insideV w:val="single" w:sz="4" w:color="auto"/>` +
		`</w:tblBorders></w:tblPr>`)
	for _, row := range block.Rows {
		b.WriteString(`<w:tr>`)
		writeCell(b, row.Label, "signature")
		writeCell(b, row.Value, "")
		b.WriteString(`</w:tr>`)
	}
	b.WriteString(`</w:tbl>`)
	// A spacer keeps consecutive tables from merging.
	b.WriteString(`<w:p/>`)
}

func writeCell(b *bytes.Buffer, text, style string) {
	b.WriteString(`<w:tc><w:tcPr><w:tcW w:w="4500" w:type="dxa"/></w:tcPr><w:p>`)
	writeRun(b, text, style)
	b.WriteString(`</w:p></w:tc>`)
}

// writeRun emits a single run. The style hints map onto run
// properties: "emphasis" is italic, "signature" is bold.
func writeRun(b *bytes.Buffer, text, style string) {
	if text == "" {
		return
	}
	b.WriteString(`<w:r>`)
	switch style {
	case "emphasis":
		b.WriteString(`<w:rPr><w:i/></w:rPr>`)
	case "signature":
		b.WriteString(`<w:rPr><w:b/></w:rPr>`)
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	_ = xml.EscapeText(b, []byte(text))
	b.WriteString(`</w:t></w:r>`)
}

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const stylesXML = xml.Header +
	`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:styleId="Title">` +
	`<w:name w:val="Title"/>` +
	`<w:pPr><w:jc w:val="center"/><w:spacing w:after="240"/></w:pPr>` +
	`<w:rPr><w:b/><w:sz w:val="48"/></w:rPr>` +
	`</w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1">` +
	`<w:name w:val="heading 1"/>` +
	`<w:pPr><w:outlineLvl w:val="0"/><w:spacing w:before="240" w:after="120"/></w:pPr>` +
	`<w:rPr><w:b/><w:sz w:val="32"/></w:rPr>` +
	`</w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2">` +
	`<w:name w:val="heading 2"/>` +
	`<w:pPr><w:outlineLvl w:val="1"/><w:spacing w:before="240" w:after="120"/></w:pPr>` +
	`<w:rPr><w:b/><w:sz w:val="28"/></w:rPr>` +
	`</w:style>` +
	`</w:styles>`
