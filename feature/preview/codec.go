package preview

import (
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"fontdb/core/artifact"
	"fontdb/core/models"
)

var (
	// ErrEmptyPreview is returned for a preview without data.
	ErrEmptyPreview = errors.New("preview has no data")
	// ErrMalformedSVG is returned when decompressed preview text is not an SVG document.
	ErrMalformedSVG = errors.New("malformed svg")
)

var (
	longDecimals = regexp.MustCompile(`(\d+\.\d{3})\d+`)
	whitespace   = regexp.MustCompile(`\s+`)
	emptyPath    = regexp.MustCompile(`<path d=""\s*[^>]*>`)
)

// Minify reduces coordinate precision to three decimals, collapses whitespace
// and drops empty paths.
func Minify(svg string) string {
	svg = longDecimals.ReplaceAllString(svg, "$1")
	svg = whitespace.ReplaceAllString(svg, " ")
	svg = strings.ReplaceAll(svg, "> <", "><")
	svg = emptyPath.ReplaceAllString(svg, "")
	return strings.TrimSpace(svg)
}

// EncodedLen returns the length of data once base64 encoded on the wire.
func EncodedLen(data []byte) int {
	return base64.StdEncoding.EncodedLen(len(data))
}

// Encode compresses svg into a preview rendering text.
func Encode(svg, text string) (*models.Preview, error) {
	data, err := artifact.Compress([]byte(svg))
	if err != nil {
		return nil, err
	}
	return &models.Preview{
		Data:           data,
		CompressedSize: EncodedLen(data),
		Text:           text,
	}, nil
}

// Decode returns the SVG text of p.
func Decode(p *models.Preview) (string, error) {
	if p == nil || len(p.Data) == 0 {
		return "", ErrEmptyPreview
	}
	raw, err := artifact.Decompress(p.Data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Recompress compresses the preview again at the best level. It returns the
// new preview and true only when the result is strictly smaller on the wire;
// otherwise p is returned unchanged.
func Recompress(p *models.Preview) (*models.Preview, bool, error) {
	svg, err := Decode(p)
	if err != nil {
		return p, false, err
	}
	data, err := artifact.Compress([]byte(svg))
	if err != nil {
		return p, false, err
	}
	if EncodedLen(data) >= EncodedLen(p.Data) {
		return p, false, nil
	}
	return &models.Preview{
		Data:           data,
		CompressedSize: EncodedLen(data),
		Text:           p.Text,
	}, true, nil
}

// CheckSVG reports whether svg is a well-formed XML document whose root
// element is svg.
func CheckSVG(svg string) error {
	dec := xml.NewDecoder(strings.NewReader(svg))
	dec.Strict = true

	root := ""
	depth := 0
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedSVG, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if root != "" {
					return fmt.Errorf("%w: multiple root elements", ErrMalformedSVG)
				}
				root = t.Name.Local
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	if root != "svg" {
		return fmt.Errorf("%w: root element is %q", ErrMalformedSVG, root)
	}
	return nil
}
