package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ericogr/technonomicon/internal/game"
)

var (
	ErrUnknownElement = errors.New("unknown element")
	ErrUnknownCodeBit = errors.New("unknown code bit")
	ErrDuplicateID    = errors.New("duplicate identifier")
)

// Catalog is the immutable element and code-bit vocabulary plus the content
// tables the entity generator draws from.
type Catalog struct {
	elements []game.Element
	codeBits []game.CodeBit
	byElem   map[string]game.Element
	byBit    map[string]game.CodeBit
	names    map[string][]string
}

// NewCatalog indexes the vocabulary. Ids are matched case-insensitively and
// must be unique within their vocabulary.
func NewCatalog(elements []game.Element, codeBits []game.CodeBit, namePools map[string][]string) (*Catalog, error) {
	c := &Catalog{
		byElem: make(map[string]game.Element, len(elements)),
		byBit:  make(map[string]game.CodeBit, len(codeBits)),
		names:  make(map[string][]string, len(namePools)),
	}
	for _, e := range elements {
		e.ID = strings.ToLower(strings.TrimSpace(e.ID))
		if e.ID == "" {
			return nil, fmt.Errorf("element with empty id: %w", ErrUnknownElement)
		}
		if _, ok := c.byElem[e.ID]; ok {
			return nil, fmt.Errorf("element %q: %w", e.ID, ErrDuplicateID)
		}
		c.byElem[e.ID] = e
		c.elements = append(c.elements, e)
	}
	for _, b := range codeBits {
		b.ID = strings.ToLower(strings.TrimSpace(b.ID))
		if b.ID == "" {
			return nil, fmt.Errorf("code bit with empty id: %w", ErrUnknownCodeBit)
		}
		if _, ok := c.byBit[b.ID]; ok {
			return nil, fmt.Errorf("code bit %q: %w", b.ID, ErrDuplicateID)
		}
		c.byBit[b.ID] = b
		c.codeBits = append(c.codeBits, b)
	}
	for archetype, pool := range namePools {
		c.names[archetype] = append([]string(nil), pool...)
	}
	return c, nil
}

func (c *Catalog) Element(id string) (game.Element, bool) {
	e, ok := c.byElem[id]
	return e, ok
}

func (c *Catalog) CodeBit(id string) (game.CodeBit, bool) {
	b, ok := c.byBit[id]
	return b, ok
}

// Elements returns every element in catalog order.
func (c *Catalog) Elements() []game.Element {
	return append([]game.Element(nil), c.elements...)
}

// CodeBits returns every code bit in catalog order.
func (c *Catalog) CodeBits() []game.CodeBit {
	return append([]game.CodeBit(nil), c.codeBits...)
}

// CoreElementIDs lists the elements that are always discovered.
func (c *Catalog) CoreElementIDs() []string {
	var out []string
	for _, e := range c.elements {
		if !e.Esoteric {
			out = append(out, e.ID)
		}
	}
	return out
}

// EsotericElementIDs lists the elements that library evolution can unlock,
// sorted so random picks are reproducible for a given seed.
func (c *Catalog) EsotericElementIDs() []string {
	var out []string
	for _, e := range c.elements {
		if e.Esoteric {
			out = append(out, e.ID)
		}
	}
	sort.Strings(out)
	return out
}

// CoreCodeBitIDs lists the code bits that are always discovered.
func (c *Catalog) CoreCodeBitIDs() []string {
	var out []string
	for _, b := range c.codeBits {
		if b.Core {
			out = append(out, b.ID)
		}
	}
	return out
}

// LockedCodeBitIDs lists the code bits that must be unlocked, sorted.
func (c *Catalog) LockedCodeBitIDs() []string {
	var out []string
	for _, b := range c.codeBits {
		if !b.Core {
			out = append(out, b.ID)
		}
	}
	sort.Strings(out)
	return out
}

// IsCoreElement reports whether id is a known non-esoteric element.
func (c *Catalog) IsCoreElement(id string) bool {
	e, ok := c.byElem[id]
	return ok && !e.Esoteric
}

// IsCoreCodeBit reports whether id is a known core code bit.
func (c *Catalog) IsCoreCodeBit(id string) bool {
	b, ok := c.byBit[id]
	return ok && b.Core
}

// NamePool returns the names available for an archetype.
func (c *Catalog) NamePool(archetype string) []string {
	return c.names[archetype]
}

// CheckKnown verifies that every identifier in the composition exists.
func (c *Catalog) CheckKnown(comp game.Composition) error {
	for _, id := range comp.Elements {
		if _, ok := c.byElem[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownElement, id)
		}
	}
	for _, id := range comp.CodeBits {
		if _, ok := c.byBit[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCodeBit, id)
		}
	}
	return nil
}
