package wms

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/geoforge/mapserv/internal/geom"
)

// Capabilities metadata XML, shaped after the WMS 1.1.1
// WMT_MS_Capabilities document.

type capabilitiesDoc struct {
	XMLName    xml.Name      `xml:"WMT_MS_Capabilities"`
	Version    string        `xml:"version,attr"`
	Service    capService    `xml:"Service"`
	Capability capCapability `xml:"Capability"`
}

type capService struct {
	Name  string `xml:"Name"`
	Title string `xml:"Title"`
}

type capCapability struct {
	Request   capRequest   `xml:"Request"`
	Exception capException `xml:"Exception"`
	Layer     capRootLayer `xml:"Layer"`
}

type capRequest struct {
	GetCapabilities capOperation `xml:"GetCapabilities"`
	GetMap          capOperation `xml:"GetMap"`
}

type capOperation struct {
	Formats []string `xml:"Format"`
}

type capException struct {
	Formats []string `xml:"Format"`
}

type capRootLayer struct {
	Title  string     `xml:"Title"`
	SRS    string     `xml:"SRS"`
	Layers []capLayer `xml:"Layer"`
}

type capLayer struct {
	Queryable  int      `xml:"queryable,attr"`
	Name       string   `xml:"Name"`
	Title      string   `xml:"Title"`
	SRS        string   `xml:"SRS"`
	LatLonBBox *capBBox `xml:"LatLonBoundingBox,omitempty"`
}

type capBBox struct {
	MinX string `xml:"minx,attr"`
	MinY string `xml:"miny,attr"`
	MaxX string `xml:"maxx,attr"`
	MaxY string `xml:"maxy,attr"`
}

// LayerInfo is one advertised layer and, when its data has been loaded, the
// extent it covers.
type LayerInfo struct {
	Name   string
	Title  string
	Extent *geom.BoundingBox
}

// WriteCapabilities serializes a capabilities document for the given layers.
func WriteCapabilities(w io.Writer, title, srs string, layers []LayerInfo) error {
	doc := capabilitiesDoc{
		Version: "1.1.1",
		Service: capService{Name: "OGC:WMS", Title: title},
		Capability: capCapability{
			Request: capRequest{
				GetCapabilities: capOperation{Formats: []string{MIMECapabilitiesXML}},
				GetMap:          capOperation{Formats: []string{MIMEPNG, MIMEJPEG}},
			},
			Exception: capException{Formats: []string{MIMEServiceExceptionXML}},
			Layer:     capRootLayer{Title: title, SRS: srs},
		},
	}
	for _, l := range layers {
		entry := capLayer{
			Name:  l.Name,
			Title: l.Title,
			SRS:   srs,
		}
		if entry.Title == "" {
			entry.Title = l.Name
		}
		if l.Extent != nil {
			entry.LatLonBBox = &capBBox{
				MinX: formatBound(l.Extent.MinX),
				MinY: formatBound(l.Extent.MinY),
				MaxX: formatBound(l.Extent.MaxX),
				MaxY: formatBound(l.Extent.MaxY),
			}
		}
		doc.Capability.Layer.Layers = append(doc.Capability.Layer.Layers, entry)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode capabilities: %w", err)
	}
	return enc.Close()
}

func formatBound(v float64) string {
	return fmt.Sprintf("%g", v)
}
