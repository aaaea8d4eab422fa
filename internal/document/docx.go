package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

func readDocx(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return parseDocumentXML(rc)
	}
	return nil, errors.New("word/document.xml not found")
}

// parseDocumentXML collects the text of top-level body paragraphs.
// Paragraphs inside tables and text boxes (w:txbxContent, which Word writes
// once per AlternateContent branch) are skipped.
func parseDocumentXML(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paras      []string
		cur        strings.Builder
		paraDepth  int
		tableDepth int
		boxDepth   int
		inText     bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			if t.Name.Local == "txbxContent" {
				boxDepth++
				inText = false
			}
			if boxDepth > 0 {
				continue
			}
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				if tableDepth > 0 {
					continue
				}
				if paraDepth == 0 {
					cur.Reset()
				}
				paraDepth++
			case "t":
				inText = paraDepth > 0 && tableDepth == 0
			case "tab":
				if paraDepth > 0 && tableDepth == 0 {
					cur.WriteByte('\t')
				}
			case "br", "cr":
				if paraDepth > 0 && tableDepth == 0 {
					cur.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			if t.Name.Local == "txbxContent" {
				boxDepth--
				continue
			}
			if boxDepth > 0 {
				continue
			}
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "p":
				if tableDepth > 0 || paraDepth == 0 {
					continue
				}
				paraDepth--
				if paraDepth == 0 {
					paras = append(paras, cur.String())
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cur.Write(t)
			}
		}
	}
	return paras, nil
}
