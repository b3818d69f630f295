// Package view holds the server-rendered components.
package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HomePage renders the plain-text landing response served at "/".
func HomePage() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "Hello from the Pokédex API!")
		return err
	})
}
