// Package links builds hypermedia self links for product responses.
package links

import (
	"strings"

	"productapi/internal/models"

	"github.com/google/uuid"
)

// RelSelf is the relation name used for every self link.
const RelSelf = "self"

const productsPath = "/products"

// Builder computes link targets relative to a base URL.
type Builder struct {
	baseURL string
}

// NewBuilder returns a Builder rooted at baseURL. An empty baseURL yields relative links.
func NewBuilder(baseURL string) Builder {
	return Builder{baseURL: strings.TrimRight(baseURL, "/")}
}

// Collection links to the product list.
func (b Builder) Collection() models.Link {
	return models.Link{Rel: RelSelf, Href: b.baseURL + productsPath}
}

// Product links to a single product.
func (b Builder) Product(id uuid.UUID) models.Link {
	return models.Link{Rel: RelSelf, Href: b.baseURL + productsPath + "/" + id.String()}
}
