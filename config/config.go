// Package config loads a pdfgrid.Config from a configuration file.
//
// Two formats are accepted. Files ending in .toml are decoded with
// BurntSushi/toml; anything else is read as INI. Both use the same sections
// and keys:
//
//	[GridSettings]
//	grid_spacing = 50
//	line_width   = 0.5
//	font_size    = 8
//	label_anchor = line
//	label_edges  = two
//	layer        = foreground
//	landscape    = false
//	page_tag     = false
//
//	[GridColor]
//	r = 128
//	g = 128
//	b = 128
//
//	[Logo]
//	logo_path = logo.png
//	corner    = top_right
//	height    = 30
//
// label_anchor is line or center, label_edges is two or four and layer is
// foreground or background. A relative logo_path is resolved against the
// directory of the configuration file.
//
// INI keys are matched case-insensitively. Comments must start a line with
// ';' or '#'; the same characters later in a line are part of the value, so
// paths such as "plans#2/logo.png" are read intact.
//
// Missing keys keep the defaults of pdfgrid.NewConfig.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lvillar/pdfgrid"
)

// ErrConfigMissing is returned by Load when the configuration file does not exist.
var ErrConfigMissing = errors.New("config: configuration file not found")

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "config.ini"

// settings mirrors the file layout. Nil fields were absent from the file.
type settings struct {
	Grid  gridSettings  `toml:"GridSettings"`
	Color colorSettings `toml:"GridColor"`
	Logo  logoSettings  `toml:"Logo"`
}

type gridSettings struct {
	Spacing   *float64 `toml:"grid_spacing"`
	LineWidth *float64 `toml:"line_width"`
	FontSize  *float64 `toml:"font_size"`
	Anchor    *string  `toml:"label_anchor"`
	Edges     *string  `toml:"label_edges"`
	Layer     *string  `toml:"layer"`
	Landscape *bool    `toml:"landscape"`
	PageTag   *bool    `toml:"page_tag"`
}

type colorSettings struct {
	R *int `toml:"r"`
	G *int `toml:"g"`
	B *int `toml:"b"`
}

type logoSettings struct {
	Path   *string  `toml:"logo_path"`
	Corner *string  `toml:"corner"`
	Height *float64 `toml:"height"`
}

// Load reads the configuration file at path and returns a validated Config.
func Load(path string) (pdfgrid.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pdfgrid.Config{}, fmt.Errorf("%w: %s", ErrConfigMissing, path)
		}
		return pdfgrid.Config{}, fmt.Errorf("config: %w", err)
	}

	var (
		s   settings
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		s, err = decodeTOML(path)
	} else {
		s, err = decodeINI(path)
	}
	if err != nil {
		return pdfgrid.Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg, err := s.apply(pdfgrid.NewConfig())
	if err != nil {
		return pdfgrid.Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if cfg.Logo.Path != "" && !filepath.IsAbs(cfg.Logo.Path) {
		cfg.Logo.Path = filepath.Join(filepath.Dir(path), cfg.Logo.Path)
	}
	if err := cfg.Validate(); err != nil {
		return pdfgrid.Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// apply overlays the settings present in s onto cfg.
func (s settings) apply(cfg pdfgrid.Config) (pdfgrid.Config, error) {
	g := s.Grid
	if g.Spacing != nil {
		cfg.Interval = *g.Spacing
	}
	if g.LineWidth != nil {
		cfg.LineWidth = *g.LineWidth
	}
	if g.FontSize != nil {
		cfg.FontSize = *g.FontSize
	}
	if g.Landscape != nil {
		cfg.Landscape = *g.Landscape
	}
	if g.PageTag != nil {
		cfg.Tag = *g.PageTag
	}

	var err error
	if g.Anchor != nil {
		if cfg.Anchor, err = pdfgrid.ParseLabelAnchor(*g.Anchor); err != nil {
			return cfg, err
		}
	}
	if g.Edges != nil {
		if cfg.Edges, err = pdfgrid.ParseLabelEdges(*g.Edges); err != nil {
			return cfg, err
		}
	}
	if g.Layer != nil {
		if cfg.Layer, err = pdfgrid.ParseLayer(*g.Layer); err != nil {
			return cfg, err
		}
	}

	if c := s.Color; c.R != nil || c.G != nil || c.B != nil {
		cfg.Color = pdfgrid.RGBColor{}
		if c.R != nil {
			cfg.Color.R = *c.R
		}
		if c.G != nil {
			cfg.Color.G = *c.G
		}
		if c.B != nil {
			cfg.Color.B = *c.B
		}
	}

	l := s.Logo
	if l.Path != nil {
		cfg.Logo.Path = strings.TrimSpace(*l.Path)
	}
	if l.Corner != nil {
		if cfg.Logo.Corner, err = pdfgrid.ParseCorner(*l.Corner); err != nil {
			return cfg, err
		}
	}
	if l.Height != nil {
		cfg.Logo.Height = *l.Height
	}
	return cfg, nil
}
