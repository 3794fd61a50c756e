package service

import (
	"strings"

	"github.com/elevatemedia/invoicer/internal/domain"
)

// Router maps client names to their invoice form variant. The table is
// fixed at startup; names not in it use the hourly form.
type Router struct {
	routes map[string]domain.FormVariant
}

// NewRouter builds a router from a name-to-variant table. Keys are
// normalized the same way lookups are.
func NewRouter(routes map[string]string) *Router {
	r := &Router{routes: make(map[string]domain.FormVariant, len(routes))}
	for name, variant := range routes {
		if domain.FormVariant(variant) == domain.VariantRetainer {
			r.routes[normalizeName(name)] = domain.VariantRetainer
		} else {
			r.routes[normalizeName(name)] = domain.VariantHourly
		}
	}
	return r
}

// FormRoute returns the form variant for a client name. Matching is
// case-insensitive and ignores surrounding whitespace.
func (r *Router) FormRoute(name string) domain.FormVariant {
	if variant, ok := r.routes[normalizeName(name)]; ok {
		return variant
	}
	return domain.VariantHourly
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
