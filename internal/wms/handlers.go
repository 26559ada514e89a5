package wms

import (
	"bytes"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/geoforge/mapserv/internal/metrics"
	"github.com/geoforge/mapserv/internal/render"
)

// Handler dispatches WMS operations from the query string. All protocol
// failures are answered with Service Exception XML at HTTP 200; only
// transport-level problems surface as HTTP errors.
func Handler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := canonical(c.Queries())
		switch params["REQUEST"] {
		case "GetMap", "map":
			return handleGetMap(c, svc, params)
		case "GetCapabilities", "capabilities":
			return handleGetCapabilities(c, svc)
		case "":
			return writeException(c, Exceptionf("", "missing REQUEST parameter"))
		default:
			return writeException(c, Exceptionf(CodeOperationNotSupported,
				"request %q is not supported", params["REQUEST"]))
		}
	}
}

func handleGetMap(c *fiber.Ctx, svc *Service, params map[string]string) error {
	req, err := ParseGetMap(params)
	if err != nil {
		return writeException(c, err)
	}

	img, err := svc.GetMap(req)
	if err != nil {
		return writeException(c, err)
	}

	var buf bytes.Buffer
	if err := render.Encode(&buf, img, req.Format); err != nil {
		return writeException(c, err)
	}

	c.Set(fiber.HeaderContentType, req.Format)
	return c.Send(buf.Bytes())
}

func handleGetCapabilities(c *fiber.Ctx, svc *Service) error {
	title, srs, layers := svc.Capabilities()

	var buf bytes.Buffer
	if err := WriteCapabilities(&buf, title, srs, layers); err != nil {
		return writeException(c, err)
	}

	c.Set(fiber.HeaderContentType, MIMECapabilitiesXML)
	return c.Send(buf.Bytes())
}

// writeException reports err to the client as Service Exception XML.
func writeException(c *fiber.Ctx, err error) error {
	se := asException(err)
	slog.Warn("service exception",
		"code", se.Code,
		"message", se.Message,
		"query", string(c.Request().URI().QueryString()),
	)
	metrics.ExceptionsTotal.WithLabelValues(se.Code).Inc()

	var buf bytes.Buffer
	if werr := se.WriteXML(&buf); werr != nil {
		return werr
	}
	c.Set(fiber.HeaderContentType, MIMEServiceExceptionXML)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
