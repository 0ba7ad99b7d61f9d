package omex

import (
	"encoding/xml"
	"fmt"
	"slices"
)

// Namespace is the standard OMEX manifest XML namespace.
const Namespace = "http://identifiers.org/combine.specifications/omex-manifest"

// manifestName is the fixed ZIP member name of the manifest.
const manifestName = "manifest.xml"

// Content is one manifest record: the location of a file within the
// archive, its format identifier (a URI or MIME type), and whether it is
// the archive's master file.
type Content struct {
	Location string `xml:"location,attr"`
	Format   string `xml:"format,attr"`
	Master   bool   `xml:"master,attr"`
}

// Manifest indexes the entries of a COMBINE Archive.
//
// Entries keep insertion order; locations are unique. The manifest is
// what decides whether an entry exists — the ZIP directory is not
// consulted for membership.
type Manifest struct {
	// XMLNS is the manifest namespace; round-trips verbatim.
	XMLNS string

	// Contents holds one record per archived file, in insertion order.
	Contents []Content
}

// NewManifest returns an empty manifest with the standard OMEX namespace.
func NewManifest() *Manifest {
	return &Manifest{XMLNS: Namespace}
}

// AddEntry appends a record. It fails with ErrLocationExists if the
// location is already indexed.
func (m *Manifest) AddEntry(location, format string, master bool) error {
	if m.HasLocation(location) {
		return fmt.Errorf("%w: %s", ErrLocationExists, location)
	}
	m.Contents = append(m.Contents, Content{
		Location: location,
		Format:   format,
		Master:   master,
	})
	return nil
}

// HasLocation reports whether a record with the given location exists.
func (m *Manifest) HasLocation(location string) bool {
	_, ok := m.find(location)
	return ok
}

// HasFormat reports whether any record carries the given format.
func (m *Manifest) HasFormat(format string) bool {
	return slices.ContainsFunc(m.Contents, func(c Content) bool {
		return c.Format == format
	})
}

// MasterFile returns the first record flagged as master.
func (m *Manifest) MasterFile() (Content, bool) {
	for _, c := range m.Contents {
		if c.Master {
			return c, true
		}
	}
	return Content{}, false
}

// Equal reports whether two manifests have the same namespace and the
// same records in the same order.
func (m *Manifest) Equal(o *Manifest) bool {
	return m.XMLNS == o.XMLNS && slices.Equal(m.Contents, o.Contents)
}

// find returns a pointer into Contents for the given location.
func (m *Manifest) find(location string) (*Content, bool) {
	for i := range m.Contents {
		if m.Contents[i].Location == location {
			return &m.Contents[i], true
		}
	}
	return nil, false
}

// removeLocation drops the record with the given location, if present.
func (m *Manifest) removeLocation(location string) {
	m.Contents = slices.DeleteFunc(m.Contents, func(c Content) bool {
		return c.Location == location
	})
}

// manifestXML is the wire shape of manifest.xml. The xmlns attribute is
// carried as a plain attribute so the namespace round-trips verbatim.
type manifestXML struct {
	XMLName  xml.Name  `xml:"omexManifest"`
	XMLNS    string    `xml:"xmlns,attr"`
	Contents []Content `xml:"content"`
}

// XML serializes the manifest. Booleans serialize as lowercase
// true/false and entry order is preserved.
func (m *Manifest) XML() ([]byte, error) {
	doc := manifestXML{XMLNS: m.XMLNS, Contents: m.Contents}
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize manifest: %w", err)
	}
	return append([]byte(xml.Header), append(body, '\n')...), nil
}

// ParseManifest deserializes a manifest.xml document.
func ParseManifest(data []byte) (*Manifest, error) {
	var doc manifestXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	ns := doc.XMLNS
	if ns == "" {
		// Some decoding paths surface the default namespace only through
		// the resolved element name.
		ns = doc.XMLName.Space
	}
	return &Manifest{XMLNS: ns, Contents: doc.Contents}, nil
}
