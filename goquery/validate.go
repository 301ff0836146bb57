package goquery

import (
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/itemfeed"
)

// Validate checks that a descriptor is well formed and that every selector
// it carries compiles.
func Validate(desc *itemfeed.BlockDescriptor) error {
	if desc == nil {
		return itemfeed.Errorf(itemfeed.EINVALID, "block descriptor required")
	}
	if err := desc.Validate(); err != nil {
		return err
	}
	for i, c := range desc.Candidates {
		if _, err := cascadia.Compile(c.Selector); err != nil {
			return itemfeed.Errorf(itemfeed.EINVALID, "descriptor %q candidate %d: invalid selector %q: %v", desc.Name, i, c.Selector, err)
		}
		link, fields := desc.Rules(i)
		if err := validateRule(desc.Name, &link); err != nil {
			return err
		}
		for j := range fields {
			if err := validateRule(desc.Name, &fields[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRule(name string, r *itemfeed.FieldRule) error {
	selectors := []string{r.Selector, r.Within}
	if r.Cross != nil {
		selectors = append(selectors, r.Cross.Ancestor)
	}
	for _, s := range selectors {
		if s == "" {
			continue
		}
		if _, err := cascadia.Compile(s); err != nil {
			return itemfeed.Errorf(itemfeed.EINVALID, "descriptor %q rule %q: invalid selector %q: %v", name, r.Name, s, err)
		}
	}

	switch r.Extract {
	case "", itemfeed.ExtractText, itemfeed.ExtractHref, itemfeed.ExtractStyleURL:
	case itemfeed.ExtractAttr:
		if r.Attr == "" {
			return itemfeed.Errorf(itemfeed.EINVALID, "descriptor %q rule %q: attr extraction needs an attribute name", name, r.Name)
		}
	default:
		return itemfeed.Errorf(itemfeed.EINVALID, "descriptor %q rule %q: unknown extract kind %q", name, r.Name, r.Extract)
	}

	for i := range r.Fallbacks {
		if err := validateRule(name, &r.Fallbacks[i]); err != nil {
			return err
		}
	}
	return nil
}
