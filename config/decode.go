package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
)

func decodeTOML(path string) (settings, error) {
	var s settings
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return settings{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return settings{}, fmt.Errorf("unknown key %s", undecoded[0])
	}
	return s, nil
}

func decodeINI(path string) (settings, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:     true,
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return settings{}, err
	}

	var s settings
	d := iniDecoder{file: f}

	d.float("GridSettings", "grid_spacing", &s.Grid.Spacing)
	d.float("GridSettings", "line_width", &s.Grid.LineWidth)
	d.float("GridSettings", "font_size", &s.Grid.FontSize)
	d.str("GridSettings", "label_anchor", &s.Grid.Anchor)
	d.str("GridSettings", "label_edges", &s.Grid.Edges)
	d.str("GridSettings", "layer", &s.Grid.Layer)
	d.boolean("GridSettings", "landscape", &s.Grid.Landscape)
	d.boolean("GridSettings", "page_tag", &s.Grid.PageTag)

	d.integer("GridColor", "r", &s.Color.R)
	d.integer("GridColor", "g", &s.Color.G)
	d.integer("GridColor", "b", &s.Color.B)

	d.str("Logo", "logo_path", &s.Logo.Path)
	d.str("Logo", "corner", &s.Logo.Corner)
	d.float("Logo", "height", &s.Logo.Height)

	return s, d.err
}

// iniDecoder copies present keys into pointer fields and keeps the first error.
type iniDecoder struct {
	file *ini.File
	err  error
}

func (d *iniDecoder) key(section, name string) *ini.Key {
	if d.err != nil || !d.file.HasSection(section) {
		return nil
	}
	sec := d.file.Section(section)
	if !sec.HasKey(name) {
		return nil
	}
	return sec.Key(name)
}

func (d *iniDecoder) fail(section, name string, err error) {
	d.err = fmt.Errorf("%s.%s: %w", section, name, err)
}

func (d *iniDecoder) float(section, name string, dst **float64) {
	k := d.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Float64()
	if err != nil {
		d.fail(section, name, err)
		return
	}
	*dst = &v
}

func (d *iniDecoder) integer(section, name string, dst **int) {
	k := d.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Int()
	if err != nil {
		d.fail(section, name, err)
		return
	}
	*dst = &v
}

func (d *iniDecoder) boolean(section, name string, dst **bool) {
	k := d.key(section, name)
	if k == nil {
		return
	}
	v, err := k.Bool()
	if err != nil {
		d.fail(section, name, err)
		return
	}
	*dst = &v
}

func (d *iniDecoder) str(section, name string, dst **string) {
	k := d.key(section, name)
	if k == nil {
		return
	}
	v := k.String()
	*dst = &v
}
