// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/nsdebug/internal/channel"
	"github.com/mia-platform/nsdebug/internal/logger"
)

const (
	debugSetPath     = "/debug-set/:namespaces"
	namespacesParam  = "namespaces"
	faviconPath      = "/favicon.ico"
	helloWorldBody   = "<!doctype html>Hello world!"
	handlersLoggerID = "nsdebug:handlers"
)

var activeChannelsTemplate = template.Must(template.New("active").Parse(`<!doctype html>
<h2>Debug functions now enabled</h2>
<dl>{{ range . }}
  <dt><strong>{{ .Name }}</strong></dt><dd>"{{ .Namespace }}"</dd>{{ end }}
</dl>
`))

type debugHandlers struct {
	registry    *channel.Registry
	passthrough bool
}

// debugRoutes registers the channel routes. The catch-all route must stay last.
func debugRoutes(app *fiber.App, h *debugHandlers) {
	app.Get(debugSetPath, h.setNamespaces)
	app.Get(faviconPath, h.favicon)
	app.Get("/*", h.root)
}

// setNamespaces applies the spec in the path to the registry and answers with the list of
// channels active afterwards.
func (h *debugHandlers) setNamespaces(c *fiber.Ctx) error {
	if h.passthrough {
		return c.Next()
	}

	rawSpec := c.Params(namespacesParam)
	if unescaped, err := url.PathUnescape(rawSpec); err == nil {
		rawSpec = unescaped
	}

	h.emit(c, channel.AlwaysOn, "Previously active: "+ActiveNamespaces(h.registry.CurrentlyActive()))
	h.emit(c, channel.AlwaysOn, fmt.Sprintf("Enabling %q", rawSpec))

	h.registry.SetActive(rawSpec)

	active := h.registry.CurrentlyActive()
	h.emit(c, channel.AlwaysOn, "Currently active:  "+ActiveNamespaces(active))

	if c.Accepts(fiber.MIMETextHTML, fiber.MIMETextPlain) == fiber.MIMETextPlain {
		return c.SendString(activeChannelsText(active))
	}

	body := new(bytes.Buffer)
	if err := activeChannelsTemplate.Execute(body, active); err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	c.Type("html")
	return c.Send(body.Bytes())
}

func (h *debugHandlers) favicon(c *fiber.Ctx) error {
	h.emit(c, channel.AlwaysOn, "favicon requested; request refused")
	return c.SendStatus(http.StatusNotFound)
}

func (h *debugHandlers) root(c *fiber.Ctx) error {
	c.Type("html")
	if !h.passthrough {
		h.logRequestData(c)
	}

	return c.SendString(helloWorldBody)
}

// logRequestData shows the request url and the response headers on their channels, unless
// the off-by-default channel is active, in which case only that one is used.
func (h *debugHandlers) logRequestData(c *fiber.Ctx) {
	if h.isActive(c, channel.OffByDefault) {
		h.emit(c, channel.OffByDefault, "Off-by-default is now active. EOM.")
		return
	}

	h.emit(c, channel.AlwaysOn, "Off-by-default is off")
	h.emit(c, channel.Request, c.Hostname()+string(c.Request().URI().RequestURI()))

	headers, err := json.Marshal(c.GetRespHeaders())
	if err != nil {
		headers = []byte(err.Error())
	}
	h.emit(c, channel.Response, string(headers))

	if !h.isActive(c, channel.Request) {
		h.emit(c, channel.AlwaysOn, "request channel is off")
	}
	if !h.isActive(c, channel.Response) {
		h.emit(c, channel.AlwaysOn, "response channel is off")
	}
}

func (h *debugHandlers) emit(c *fiber.Ctx, name, message string) {
	if err := h.registry.Emit(name, message); err != nil {
		logger.FromContext(c.UserContext()).WithName(handlersLoggerID).Error("channel emit failed", "channel", name, "error", err)
	}
}

func (h *debugHandlers) isActive(c *fiber.Ctx, name string) bool {
	active, err := h.registry.IsActive(name)
	if err != nil {
		logger.FromContext(c.UserContext()).WithName(handlersLoggerID).Error("channel lookup failed", "channel", name, "error", err)
	}
	return active
}

// ActiveNamespaces renders the namespaces of channels one per indented line.
func ActiveNamespaces(channels []channel.Channel) string {
	builder := new(strings.Builder)
	for _, ch := range channels {
		builder.WriteString("\n  " + ch.Namespace)
	}
	return builder.String()
}

func activeChannelsText(channels []channel.Channel) string {
	builder := new(strings.Builder)
	for _, ch := range channels {
		builder.WriteString(ch.Name + "\t" + ch.Namespace + "\n")
	}
	return builder.String()
}
