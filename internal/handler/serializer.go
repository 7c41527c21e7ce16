package handler

import (
	"encoding/json"

	"github.com/labstack/echo/v4"
)

// JSONSerializer is echo's default serializer with HTML escaping turned
// off, so names like "<b>café</b> & co" reach clients byte for byte.
type JSONSerializer struct {
	echo.DefaultJSONSerializer
}

func (JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}
