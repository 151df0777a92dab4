package annotations

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/bcf-portal/internal/catalog"
	"github.com/angelmondragon/bcf-portal/internal/configurator"
)

// Annotator produces free-text copy for a product configuration. Callers treat
// the result as opaque display text.
type Annotator interface {
	Annotate(ctx context.Context, product catalog.Product, sel configurator.Selection) (string, error)
}

// TemplateAnnotator writes a short marketing line from the catalog entry and
// the current choices without calling out to any service.
type TemplateAnnotator struct{}

func (TemplateAnnotator) Annotate(ctx context.Context, product catalog.Product, sel configurator.Selection) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, a %s strain.", product.Name, strings.ToLower(product.Category))
	if desc := strings.TrimSpace(product.Description); desc != "" {
		b.WriteString(" ")
		b.WriteString(desc)
	}

	var details []string
	if sel.Style != nil {
		details = append(details, humanize(sel.Style.String()))
	}
	if sel.Theme != nil {
		details = append(details, "shot on "+humanize(sel.Theme.String()))
	}
	if sel.Packaging != nil {
		details = append(details, "packed in "+humanize(sel.Packaging.String()))
	}
	if len(details) > 0 {
		b.WriteString(" Presented as ")
		b.WriteString(strings.Join(details, ", "))
		b.WriteString(".")
	}
	return b.String(), nil
}

func humanize(value string) string {
	return strings.ReplaceAll(value, "_", " ")
}
