// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package channel

// Names of the built-in channels used by the server routes and the startup demo.
const (
	AlwaysOn     = "always-on"
	Request      = "request"
	Response     = "response"
	OffByDefault = "off-by-default"
)

// Definition binds a channel name to its namespace.
type Definition struct {
	Name      string
	Namespace string
}

// Defaults returns the built-in channel table in registration order.
func Defaults() []Definition {
	return []Definition{
		{Name: AlwaysOn, Namespace: "app:always-on*"},
		{Name: Request, Namespace: "app:router:request"},
		{Name: Response, Namespace: "app:router:response"},
		{Name: OffByDefault, Namespace: "off:by:default"},
	}
}
