package formspec

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formwidgets/pkg/forms"
)

// Store holds form definitions keyed by name. It is safe for concurrent
// readers once loaded.
type Store struct {
	forms map[string]FormSpec
}

// NewStore returns a store holding specs. Duplicate names are rejected.
func NewStore(specs ...FormSpec) (*Store, error) {
	store := &Store{forms: make(map[string]FormSpec, len(specs))}
	for _, spec := range specs {
		if err := store.add(spec); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// LoadFS walks fsys and parses every .json, .yaml, .yml and .hcl file.
// A nil fsys yields an empty store.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]FormSpec)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSpecFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formspec: read %s: %w", path, err)
		}
		specs, err := Parse(data, path)
		if err != nil {
			return err
		}
		for _, spec := range specs {
			if err := store.add(spec); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) add(spec FormSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if existing, ok := s.forms[spec.Name]; ok {
		return fmt.Errorf("%w: duplicate form %q (files %s, %s)", ErrInvalidSpec, spec.Name, existing.Source, spec.Source)
	}
	s.forms[spec.Name] = spec
	return nil
}

// Form returns the definition called name.
func (s *Store) Form(name string) (FormSpec, bool) {
	if s == nil {
		return FormSpec{}, false
	}
	spec, ok := s.forms[name]
	return spec, ok
}

// Names returns the form names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.forms))
	for name := range s.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Empty reports whether the store holds no definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

// Build creates the form called name with the default registry.
func (s *Store) Build(name string, opts ...forms.Option) (*forms.Form, error) {
	spec, ok := s.Form(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return Build(spec, opts...)
}

// BuildWith creates the form called name with r, which may carry kinds
// beyond the built-in ones.
func (s *Store) BuildWith(r *Registry, name string, opts ...forms.Option) (*forms.Form, error) {
	spec, ok := s.Form(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	if r == nil {
		r = DefaultRegistry()
	}
	return r.Build(spec, opts...)
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".hcl":
		return true
	}
	return false
}
