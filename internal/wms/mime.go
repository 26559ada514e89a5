package wms

// MIME types used on the wire, per the OGC WMS 1.1.1 specification.
const (
	MIMEPNG                 = "image/png"
	MIMEJPEG                = "image/jpeg"
	MIMEServiceExceptionXML = "application/vnd.ogc.se_xml"
	MIMECapabilitiesXML     = "application/vnd.ogc.wms_xml"
)

// supportedFormats lists the image formats GetMap can produce.
var supportedFormats = map[string]bool{
	MIMEPNG:  true,
	MIMEJPEG: true,
}
