package theming

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

// DefaultName is the theme shipped with the module.
const DefaultName = "adei"

// StylesheetAsset is the asset key renderers resolve for their stylesheet.
const StylesheetAsset = "vanilla.stylesheet"

var (
	// ErrUnknownVariant is returned when a variant is requested that the
	// manifest does not declare.
	ErrUnknownVariant = errors.New("theming: unknown variant")
	// ErrInvalidToken is returned for token values that cannot be emitted as
	// CSS custom properties.
	ErrInvalidToken = errors.New("theming: invalid token value")
)

//go:embed data/adei.yaml
var defaultManifest []byte

var (
	defaultOnce sync.Once
	defaultErr  error
	defaultMan  *theme.Manifest
)

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

// Default returns the embedded manifest.
func Default() (*theme.Manifest, error) {
	defaultOnce.Do(func() {
		defaultMan, defaultErr = LoadManifest(bytes.NewReader(defaultManifest))
	})
	return defaultMan, defaultErr
}

// LoadManifest decodes a YAML theme manifest.
func LoadManifest(r io.Reader) (*theme.Manifest, error) {
	var file manifestFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("theming: decode manifest: %w", err)
	}
	if strings.TrimSpace(file.Name) == "" {
		return nil, errors.New("theming: manifest name is required")
	}

	manifest := &theme.Manifest{
		Name:      file.Name,
		Version:   file.Version,
		Tokens:    file.Tokens,
		Templates: file.Templates,
		Assets:    theme.Assets{Prefix: file.Assets.Prefix, Files: file.Assets.Files},
	}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, variant := range file.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets:    theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// LoadManifestFile reads a manifest from disk.
func LoadManifestFile(filename string) (*theme.Manifest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("theming: open manifest: %w", err)
	}
	defer f.Close()
	return LoadManifest(f)
}

// Resolve merges a variant over its manifest and derives the renderer
// configuration: tokens, CSS custom properties, template partials and an
// asset URL resolver. An empty variant selects the base manifest.
func Resolve(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, errors.New("theming: manifest is nil")
	}

	tokens := copyMap(manifest.Tokens)
	partials := copyMap(manifest.Templates)
	assets := copyMap(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("%w: %q in theme %q", ErrUnknownVariant, variant, manifest.Name)
		}
		mergeInto(tokens, v.Tokens)
		mergeInto(partials, v.Templates)
		mergeInto(assets, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	vars := make(map[string]string, len(tokens))
	for name, value := range tokens {
		if strings.ContainsAny(value, "<>{};") {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalidToken, name, value)
		}
		vars[CSSVarName(name)] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  vars,
		AssetURL: func(key string) string {
			file, ok := assets[key]
			if !ok || file == "" {
				return ""
			}
			if strings.HasPrefix(file, "/") || strings.Contains(file, "://") {
				return file
			}
			if prefix == "" {
				return file
			}
			return path.Join(prefix, file)
		},
	}, nil
}

// CSSVarName converts a token name into a custom property name:
// "color.primary" becomes "--color-primary".
func CSSVarName(token string) string {
	token = strings.TrimSpace(token)
	token = strings.TrimPrefix(token, "--")
	token = strings.NewReplacer(".", "-", "_", "-", " ", "-").Replace(token)
	return "--" + strings.ToLower(token)
}

// RootStyle renders the CSS variables as a :root rule with sorted keys.
func RootStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root{")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteByte(':')
		b.WriteString(cfg.CSSVars[key])
		b.WriteByte(';')
	}
	b.WriteByte('}')
	return b.String()
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func mergeInto(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}
