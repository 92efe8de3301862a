package bridge

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// docXML mirrors the small slice of the native analyzer's documentation-XML
// schema that Hover renders: an abstract summary, an optional declaration,
// and parameter/result discussions. Unrecognized elements and attributes
// are ignored by encoding/xml's default decoding, which is exactly the
// "missing structure is absent, not an error" behavior this bridge wants.
type docXML struct {
	Declaration  string `xml:"Declaration"`
	CommentParts struct {
		Abstract struct {
			Para []string `xml:"Para"`
		} `xml:"Abstract"`
		Parameters struct {
			Parameter []struct {
				Name      string `xml:"Name"`
				Discussion struct {
					Para []string `xml:"Para"`
				} `xml:"Discussion"`
			} `xml:"Parameter"`
		} `xml:"Parameters"`
		ResultDiscussion struct {
			Para []string `xml:"Para"`
		} `xml:"ResultDiscussion"`
	} `xml:"CommentParts"`
}

// ConvertDocXML converts the native analyzer's documentation-XML comment
// format into Markdown suitable for a Hover response body. There is no
// third-party Markdown-from-XML converter in the dependency set this
// bridge draws from, and the schema is bespoke to the native analyzer, so
// this is a direct encoding/xml decode followed by string assembly rather
// than a generic XML-to-Markdown library.
func ConvertDocXML(rawXML string) (string, error) {
	var doc docXML
	// The native analyzer's root element name varies by declaration kind
	// (Function, Class, Variable, ...); skip to the first start element and
	// decode it directly, so the root tag itself doesn't need to be known in
	// advance.
	dec := xml.NewDecoder(strings.NewReader(rawXML))
	var root xml.StartElement
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("convert doc xml: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			root = start
			break
		}
	}
	if err := dec.DecodeElement(&doc, &root); err != nil {
		return "", fmt.Errorf("convert doc xml: %w", err)
	}

	var out strings.Builder
	for _, p := range doc.CommentParts.Abstract.Para {
		out.WriteString(p)
		out.WriteString("\n\n")
	}

	if doc.Declaration != "" {
		out.WriteString("```swift\n")
		out.WriteString(doc.Declaration)
		out.WriteString("\n```\n\n")
	}

	if params := doc.CommentParts.Parameters.Parameter; len(params) > 0 {
		out.WriteString("**Parameters:**\n\n")
		for _, p := range params {
			out.WriteString("- `")
			out.WriteString(p.Name)
			out.WriteString("`")
			if discussion := strings.Join(p.Discussion.Para, " "); discussion != "" {
				out.WriteString(": ")
				out.WriteString(discussion)
			}
			out.WriteString("\n")
		}
		out.WriteString("\n")
	}

	if result := strings.Join(doc.CommentParts.ResultDiscussion.Para, " "); result != "" {
		out.WriteString("**Returns:** ")
		out.WriteString(result)
		out.WriteString("\n")
	}

	return strings.TrimSpace(out.String()), nil
}
