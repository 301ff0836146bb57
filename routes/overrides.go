package routes

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/itemfeed"
	"gopkg.in/yaml.v3"
)

// Overrides maps route names to replacement block descriptors.
//
// A file looks like:
//
//	tag:
//	  candidates:
//	    - selector: .book-item-wrap
//	  link: {selector: a, extract: href, within: .book-item}
//	  fields:
//	    - {name: title, selector: .title, within: .book-item}
type Overrides map[string]*itemfeed.BlockDescriptor

// LoadOverrides decodes overrides from YAML. Descriptors without a name
// take the route's name.
func LoadOverrides(r io.Reader) (Overrides, error) {
	var o Overrides
	if err := yaml.NewDecoder(r).Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return nil, itemfeed.Errorf(itemfeed.EINVALID, "failed to parse descriptors: %v", err)
	}
	for name, desc := range o {
		if desc == nil {
			return nil, itemfeed.Errorf(itemfeed.EINVALID, "route %q: empty descriptor", name)
		}
		if desc.Name == "" {
			desc.Name = name
		}
	}
	return o, nil
}

// LoadOverridesFile reads overrides from a YAML file.
func LoadOverridesFile(path string) (Overrides, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptors: %w", err)
	}
	defer f.Close()
	return LoadOverrides(f)
}

// Apply replaces the descriptors of the named routes. Each descriptor is
// passed to check first, when check is not nil.
func (o Overrides) Apply(r *Registry, check func(*itemfeed.BlockDescriptor) error) error {
	for name, desc := range o {
		if check != nil {
			if err := check(desc); err != nil {
				return err
			}
		}
		if err := r.SetDescriptor(name, desc); err != nil {
			return err
		}
	}
	return nil
}
