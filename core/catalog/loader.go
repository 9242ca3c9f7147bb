package catalog

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/passage/core/errors"
)

// Document is the on-disk shape of a JSON or YAML catalog.
type Document struct {
	ID    string     `json:"id" yaml:"id"`
	Books []BookData `json:"books" yaml:"books"`
}

// Format identifies a catalog file encoding.
type Format string

// Supported catalog formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXML  Format = "xml"
)

// DetectFormat derives the format from a file name. A trailing ".xz" marks
// the file as xz-compressed.
func DetectFormat(path string) (format Format, compressed bool, err error) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".xz") {
		compressed = true
		name = strings.TrimSuffix(name, ".xz")
	}
	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, compressed, nil
	case ".yaml", ".yml":
		return FormatYAML, compressed, nil
	case ".xml":
		return FormatXML, compressed, nil
	default:
		return "", compressed, errors.NewParse("catalog", path, "unknown file extension")
	}
}

// LoadFile reads a catalog file, choosing the decoder from its extension.
func LoadFile(path string) (*Catalog, error) {
	format, compressed, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, &errors.ParseError{Format: "xz", Path: path, Message: err.Error(), Err: err}
		}
		r = xr
	}

	c, err := Load(r, format)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	return c, nil
}

// Load decodes a catalog from r.
func Load(r io.Reader, format Format) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIO("read", "catalog", err)
	}
	return Parse(data, format)
}

// Parse decodes a catalog from data.
func Parse(data []byte, format Format) (*Catalog, error) {
	var doc Document
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &errors.ParseError{Format: "JSON catalog", Message: err.Error(), Err: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &errors.ParseError{Format: "YAML catalog", Message: err.Error(), Err: err}
		}
	case FormatXML:
		d, err := parseXML(data)
		if err != nil {
			return nil, err
		}
		doc = d
	default:
		return nil, errors.NewValidationf("format", "unsupported catalog format %q", format)
	}
	return New(doc.ID, doc.Books)
}

// Encode writes the catalog in format. XML is read-only.
func (c *Catalog) Encode(w io.Writer, format Format) error {
	doc := c.Document()
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.NewValidationf("format", "cannot encode catalog as %q", format)
	}
}

// WriteFile writes the catalog to path, compressing when the name ends in
// ".xz".
func (c *Catalog) WriteFile(path string) error {
	format, compressed, err := DetectFormat(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if compressed {
		xw, err := xz.NewWriter(&buf)
		if err != nil {
			return errors.NewIO("compress", path, err)
		}
		if err := c.Encode(xw, format); err != nil {
			return err
		}
		if err := xw.Close(); err != nil {
			return errors.NewIO("compress", path, err)
		}
	} else if err := c.Encode(&buf, format); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}
