package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/net/html"

	loomerrors "github.com/loom-ui/loom/internal/errors"
	"github.com/loom-ui/loom/pkg/bundle"
)

func extractCmd() *cobra.Command {
	var (
		name string
		lit  bool
	)

	cmd := &cobra.Command{
		Use:   "extract <file.js>",
		Short: "Extract a component template from a JavaScript source file",
		Long: `Extract the template markup from a component's JavaScript source.

Recognizes Polymer 3 "static get template" declarations, Polymer 2
dom-module markup, and (with --lit) Lit render methods. The extracted
template is printed as HTML.

Examples:
  loom extract frontend/my-card.js
  loom extract --lit frontend/my-view.js`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args[0], name, lit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Component name used in diagnostics (default from file name)")
	cmd.Flags().BoolVar(&lit, "lit", false, "Extract from a Lit render method instead of Polymer")

	return cmd
}

func runExtract(path, name string, lit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return loomerrors.New("E123").Wrap(err)
	}
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), ".js")
	}

	var tmpl *html.Node
	if lit {
		var ok bool
		tmpl, ok = bundle.LitTemplateElement(name, string(data))
		if !ok {
			return loomerrors.Newf(loomerrors.CategoryBundle,
				"no Lit render method found in %s", path)
		}
	} else {
		tmpl = bundle.TemplateElement(name, string(data))
	}

	return html.Render(os.Stdout, tmpl)
}
