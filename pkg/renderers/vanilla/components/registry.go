package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-formgen-theme/pkg/model"
	rendertemplate "github.com/goliatone/go-formgen-theme/pkg/render/template"
)

// Role names the extension point a component is registered under. The host
// looks up UIHints["widget"] in the widget role and UIHints["field"] in the
// field role; one descriptor may serve both.
type Role string

const (
	RoleWidget Role = "widget"
	RoleField  Role = "field"
)

// Renderer writes the control markup for a field into buf.
type Renderer func(buf *bytes.Buffer, field model.Field, data ComponentData) error

// ComponentData carries per-field render state and helpers.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// Partials maps partial keys (forms.input, ...) to template paths and
	// overrides the template a component would otherwise use.
	Partials map[string]string
	// Path is the dotted field path; it doubles as the submission name.
	Path string
	// ID is the stable element handle of the control.
	ID       string
	Value    any
	Disabled bool
	ReadOnly bool
	Errors   []string
	Config   map[string]any
}

// Partial returns the override for key, or fallback.
func (d ComponentData) Partial(key, fallback string) string {
	if d.Partials != nil {
		if candidate := strings.TrimSpace(d.Partials[key]); candidate != "" {
			return candidate
		}
	}
	return fallback
}

// Script describes JavaScript a component needs emitted once per render.
type Script struct {
	Src    string
	Inline string
	Defer  bool
	Module bool
}

// Descriptor bundles the renderer implementation with asset dependencies.
// OwnsLabel marks components that render their own label, so the field
// chrome omits it.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	OwnsLabel   bool
	Stylesheets []string
	Scripts     []Script
}

// Key identifies a registration.
type Key struct {
	Role Role
	Name string
}

// Registry tracks component descriptors per role. Names are case-insensitive.
type Registry struct {
	mu         sync.RWMutex
	components map[Key]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[Key]Descriptor),
	}
}

// Clone returns a deep copy of the registry to allow isolated mutations.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for key, descriptor := range r.components {
		cloned.components[key] = cloneDescriptor(descriptor)
	}
	return cloned
}

// Register associates a descriptor with name in the widget role.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	return r.RegisterRole(RoleWidget, name, descriptor)
}

// RegisterRole associates a descriptor with name in role. Existing entries
// are replaced.
func (r *Registry) RegisterRole(role Role, name string, descriptor Descriptor) error {
	if role != RoleWidget && role != RoleField {
		return fmt.Errorf("components: unknown role %q", role)
	}
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %s %q is nil", role, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[Key{Role: role, Name: name}] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Lookup fetches a descriptor by role and name.
func (r *Registry) Lookup(role Role, name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[Key{Role: role, Name: normalize(name)}]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Descriptor fetches a widget-role descriptor by name.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	return r.Lookup(RoleWidget, name)
}

// Names returns the sorted names registered under role.
func (r *Registry) Names(role Role) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for key := range r.components {
		if key.Role == role {
			names = append(names, key.Name)
		}
	}
	slices.Sort(names)
	return names
}

// Assets aggregates the stylesheets and scripts of the given registrations,
// dropping duplicates while keeping first-seen order.
func (r *Registry) Assets(keys []Key) (stylesheets []string, scripts []Script) {
	if len(keys) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seenStyles := make(map[string]struct{})
	seenScripts := make(map[string]struct{})

	for _, key := range keys {
		descriptor, ok := r.components[Key{Role: key.Role, Name: normalize(key.Name)}]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href == "" {
				continue
			}
			if _, exists := seenStyles[href]; exists {
				continue
			}
			seenStyles[href] = struct{}{}
			stylesheets = append(stylesheets, href)
		}
		for _, script := range descriptor.Scripts {
			id := scriptKey(script)
			if _, exists := seenScripts[id]; exists {
				continue
			}
			seenScripts[id] = struct{}{}
			scripts = append(scripts, script)
		}
	}
	return stylesheets, scripts
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		Renderer:    src.Renderer,
		OwnsLabel:   src.OwnsLabel,
		Stylesheets: slices.Clone(src.Stylesheets),
		Scripts:     slices.Clone(src.Scripts),
	}
}

func scriptKey(script Script) string {
	if script.Src != "" {
		return "src:" + script.Src
	}
	return "inline:" + script.Inline
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
