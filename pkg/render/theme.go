package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ThemeConfig derives the renderer configuration for a go-theme selection.
// Variant tokens, templates and asset files override the manifest's; missing
// partials fall back to the supplied defaults. Every token is also exposed as
// a `--<token>` CSS variable.
func ThemeConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: make(map[string]string, len(fallbacks)),
		Tokens:   make(map[string]string),
		CSSVars:  make(map[string]string),
	}
	for key, value := range fallbacks {
		cfg.Partials[key] = value
	}

	manifest := selection.Manifest
	if manifest == nil {
		cfg.AssetURL = func(string) string { return "" }
		return cfg
	}

	prefix := manifest.Assets.Prefix
	files := make(map[string]string, len(manifest.Assets.Files))
	mergeStrings(cfg.Partials, manifest.Templates)
	mergeStrings(cfg.Tokens, manifest.Tokens)
	mergeStrings(files, manifest.Assets.Files)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		mergeStrings(cfg.Partials, variant.Templates)
		mergeStrings(cfg.Tokens, variant.Tokens)
		mergeStrings(files, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	for key, value := range cfg.Tokens {
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = assetResolver(prefix, files)
	return cfg
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(prefix, "/")
	return func(key string) string {
		file := files[strings.TrimSpace(key)]
		if file == "" {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return prefix + "/" + file
	}
}

func mergeStrings(dst, src map[string]string) {
	for key, value := range src {
		if strings.TrimSpace(value) == "" {
			continue
		}
		dst[key] = value
	}
}
