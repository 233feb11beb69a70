package shadcn

import (
	"embed"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formgen-theme/pkg/render"
)

//go:embed manifest.yaml
var manifestYAML []byte

//go:embed templates/shadcn/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

// TemplatesFS exposes the theme's template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the theme stylesheet for serving under the manifest's
// asset prefix.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

type manifestDocument struct {
	Name      string                     `yaml:"name"`
	Version   string                     `yaml:"version"`
	Tokens    map[string]string          `yaml:"tokens"`
	Templates map[string]string          `yaml:"templates"`
	Assets    assetsDocument             `yaml:"assets"`
	Variants  map[string]variantDocument `yaml:"variants"`
}

type assetsDocument struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantDocument struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsDocument    `yaml:"assets"`
}

// ParseManifest decodes a YAML theme manifest.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var doc manifestDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("shadcn: decode manifest: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("shadcn: manifest name is required")
	}

	manifest := &theme.Manifest{
		Name:      doc.Name,
		Version:   doc.Version,
		Tokens:    doc.Tokens,
		Templates: doc.Templates,
		Assets:    theme.Assets{Prefix: doc.Assets.Prefix, Files: doc.Assets.Files},
	}
	if len(doc.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(doc.Variants))
		for name, variant := range doc.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets:    theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// Manifest returns the embedded theme manifest.
func Manifest() (*theme.Manifest, error) {
	return ParseManifest(manifestYAML)
}

// RendererConfig resolves the embedded manifest for variant into renderer
// configuration. An unknown variant yields the base manifest values.
func RendererConfig(variant string) (*theme.RendererConfig, error) {
	manifest, err := Manifest()
	if err != nil {
		return nil, err
	}
	selection := &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: manifest,
	}
	return render.ThemeConfig(selection, New().Partials()), nil
}
