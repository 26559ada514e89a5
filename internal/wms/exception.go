package wms

import (
	"encoding/xml"
	"fmt"
	"io"
)

// WMS service exception codes, per WMS 1.1.1 annex A. An empty code is
// valid: WMS reserves codes for specific situations and leaves every
// other failure uncoded.
const (
	CodeInvalidFormat         = "InvalidFormat"
	CodeInvalidSRS            = "InvalidSRS"
	CodeLayerNotDefined       = "LayerNotDefined"
	CodeStyleNotDefined       = "StyleNotDefined"
	CodeOperationNotSupported = "OperationNotSupported"
)

// ServiceException is a WMS protocol error, reported to the client as
// Service Exception XML.
type ServiceException struct {
	Code    string // one of the Code constants, or empty
	Message string
}

// Exceptionf builds a ServiceException with a formatted message.
func Exceptionf(code, format string, args ...interface{}) *ServiceException {
	return &ServiceException{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *ServiceException) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

type exceptionReport struct {
	XMLName   xml.Name       `xml:"ServiceExceptionReport"`
	Version   string         `xml:"version,attr"`
	Exception exceptionEntry `xml:"ServiceException"`
}

type exceptionEntry struct {
	Code    string `xml:"code,attr,omitempty"`
	Message string `xml:",chardata"`
}

// WriteXML serializes the exception as a Service Exception Report.
func (e *ServiceException) WriteXML(w io.Writer) error {
	report := exceptionReport{
		Version:   "1.1.1",
		Exception: exceptionEntry{Code: e.Code, Message: e.Message},
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode exception report: %w", err)
	}
	return enc.Close()
}

// asException converts any error into a ServiceException. Errors that are
// not already exceptions become uncoded ones, keeping internal failures
// reportable through the same XML channel.
func asException(err error) *ServiceException {
	if se, ok := err.(*ServiceException); ok {
		return se
	}
	return &ServiceException{Message: err.Error()}
}
