package convert

import (
	"slices"

	"github.com/danieljhkim/transheet/internal/tree"
)

// Document is the tree of one (domain, locale) pair.
type Document struct {
	Domain string
	Locale string
	Tree   *tree.Tree
}

// Catalog maps domain -> locale -> tree for one conversion. Domains and each
// domain's locales keep first-seen order.
type Catalog struct {
	registry *Registry
	domains  []string
	byDomain map[string]*domainTrees
}

type domainTrees struct {
	locales []string
	trees   map[string]*tree.Tree
}

// NewCatalog creates an empty catalog with a fresh locale registry.
func NewCatalog() *Catalog {
	return &Catalog{
		registry: NewRegistry(),
		byDomain: make(map[string]*domainTrees),
	}
}

// Registry returns the catalog's locale registry.
func (c *Catalog) Registry() *Registry {
	return c.registry
}

// Locales returns every registered locale in registry order.
func (c *Catalog) Locales() []string {
	return c.registry.Locales()
}

// Domains returns the domains in first-seen order.
func (c *Catalog) Domains() []string {
	return slices.Clone(c.domains)
}

// DomainLocales returns the locales holding a tree for domain.
func (c *Catalog) DomainLocales(domain string) []string {
	d, ok := c.byDomain[domain]
	if !ok {
		return nil
	}
	return slices.Clone(d.locales)
}

// Tree returns the tree for (domain, locale).
func (c *Catalog) Tree(domain, locale string) (*tree.Tree, bool) {
	d, ok := c.byDomain[domain]
	if !ok {
		return nil, false
	}
	t, ok := d.trees[locale]
	return t, ok
}

func (c *Catalog) domain(name string) *domainTrees {
	d, ok := c.byDomain[name]
	if !ok {
		d = &domainTrees{trees: make(map[string]*tree.Tree)}
		c.byDomain[name] = d
		c.domains = append(c.domains, name)
	}
	return d
}

// Ensure returns the tree for (domain, locale), creating an empty one and
// registering the locale when needed.
func (c *Catalog) Ensure(domain, locale string) *tree.Tree {
	d := c.domain(domain)
	c.registry.Register(locale)
	t, ok := d.trees[locale]
	if !ok {
		t = tree.New()
		d.trees[locale] = t
		d.locales = append(d.locales, locale)
	}
	return t
}

// Put stores t for (domain, locale), replacing any previous tree.
func (c *Catalog) Put(domain, locale string, t *tree.Tree) {
	if t == nil {
		t = tree.New()
	}
	d := c.domain(domain)
	c.registry.Register(locale)
	if _, ok := d.trees[locale]; !ok {
		d.locales = append(d.locales, locale)
	}
	d.trees[locale] = t
}

// Documents returns the non-empty trees in domain order, then locale order.
// Empty trees never become documents.
func (c *Catalog) Documents() []Document {
	return c.collect(false)
}

// Gated returns the (domain, locale) pairs whose trees ended up empty.
func (c *Catalog) Gated() []Document {
	return c.collect(true)
}

func (c *Catalog) collect(empty bool) []Document {
	var docs []Document
	for _, name := range c.domains {
		d := c.byDomain[name]
		for _, locale := range d.locales {
			t := d.trees[locale]
			if t.IsEmpty() != empty {
				continue
			}
			docs = append(docs, Document{Domain: name, Locale: locale, Tree: t})
		}
	}
	return docs
}
