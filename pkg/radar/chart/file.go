package chart

import (
	"bytes"
	"io"
	"math"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stackradar/pkg/errors"
)

// File is the on-disk TOML shape of a chart definition. Quadrant angles are
// written as multiples of π. Tables and keys left out fall back to the
// stock chart.
type File struct {
	Title     string         `toml:"title"`
	Order     []int          `toml:"order,omitempty"`
	Quadrants []QuadrantFile `toml:"quadrants,omitempty"`
	Rings     []RingFile     `toml:"rings,omitempty"`
	Tuning    TuningFile     `toml:"tuning"`
	Render    RenderFile     `toml:"render"`
}

// QuadrantFile is one [[quadrants]] table.
type QuadrantFile struct {
	Name      string  `toml:"name"`
	RadialMin float64 `toml:"radial_min"`
	RadialMax float64 `toml:"radial_max"`
	FactorX   float64 `toml:"factor_x"`
	FactorY   float64 `toml:"factor_y"`
}

// RingFile is one [[rings]] table.
type RingFile struct {
	Name      string  `toml:"name"`
	Radius    float64 `toml:"radius"`
	Color     string  `toml:"color"`
	TextColor string  `toml:"text_color"`
}

// TuningFile is the [tuning] table.
type TuningFile struct {
	InnerRadius     float64 `toml:"inner_radius"`
	BoxInset        float64 `toml:"box_inset"`
	AngularMargin   float64 `toml:"angular_margin"`
	RadialMargin    float64 `toml:"radial_margin"`
	SizeScale       float64 `toml:"size_scale"`
	DefaultSize     float64 `toml:"default_size"`
	CollisionRadius float64 `toml:"collision_radius"`
	Strength        float64 `toml:"strength"`
	MaxTicks        int     `toml:"max_ticks"`
	Threshold       float64 `toml:"threshold"`
	Seed            int64   `toml:"seed"`
	Workers         int     `toml:"workers"`
}

// RenderFile is the [render] table.
type RenderFile struct {
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	Font          string  `toml:"font"`
	Background    string  `toml:"background"`
	Text          string  `toml:"text"`
	Grid          string  `toml:"grid"`
	Inactive      string  `toml:"inactive"`
	Footer        string  `toml:"footer"`
	PrintLayout   bool    `toml:"print_layout"`
	LinksInNewTab bool    `toml:"links_in_new_tab"`
}

// DefaultFile returns the stock chart in file form.
func DefaultFile() File {
	return ToFile(Default())
}

// ToFile converts a configuration into its file form.
func ToFile(c Config) File {
	f := File{
		Title: c.Title,
		Order: append([]int(nil), c.Order...),
		Tuning: TuningFile{
			InnerRadius:     c.Tuning.InnerRadius,
			BoxInset:        c.Tuning.BoxInset,
			AngularMargin:   c.Tuning.AngularMargin,
			RadialMargin:    c.Tuning.RadialMargin,
			SizeScale:       c.Tuning.SizeScale,
			DefaultSize:     c.Tuning.DefaultSize,
			CollisionRadius: c.Tuning.CollisionRadius,
			Strength:        c.Tuning.Strength,
			MaxTicks:        c.Tuning.MaxTicks,
			Threshold:       c.Tuning.Threshold,
			Seed:            c.Tuning.Seed,
			Workers:         c.Tuning.Workers,
		},
		Render: RenderFile(c.Render),
	}
	for _, q := range c.Quadrants {
		f.Quadrants = append(f.Quadrants, QuadrantFile{
			Name:      q.Name,
			RadialMin: q.AngleMin / math.Pi,
			RadialMax: q.AngleMax / math.Pi,
			FactorX:   q.FactorX,
			FactorY:   q.FactorY,
		})
	}
	for _, r := range c.Rings {
		f.Rings = append(f.Rings, RingFile(r))
	}
	return f
}

// Config converts the file form into a validated configuration.
func (f File) Config() (Config, error) {
	c := Config{
		Title: f.Title,
		Order: append([]int(nil), f.Order...),
		Tuning: Tuning{
			InnerRadius:     f.Tuning.InnerRadius,
			BoxInset:        f.Tuning.BoxInset,
			AngularMargin:   f.Tuning.AngularMargin,
			RadialMargin:    f.Tuning.RadialMargin,
			SizeScale:       f.Tuning.SizeScale,
			DefaultSize:     f.Tuning.DefaultSize,
			CollisionRadius: f.Tuning.CollisionRadius,
			Strength:        f.Tuning.Strength,
			MaxTicks:        f.Tuning.MaxTicks,
			Threshold:       f.Tuning.Threshold,
			Seed:            f.Tuning.Seed,
			Workers:         f.Tuning.Workers,
		},
		Render: Render(f.Render),
	}
	for _, q := range f.Quadrants {
		c.Quadrants = append(c.Quadrants, Quadrant{
			Name:     q.Name,
			AngleMin: q.RadialMin * math.Pi,
			AngleMax: q.RadialMax * math.Pi,
			FactorX:  q.FactorX,
			FactorY:  q.FactorY,
		})
	}
	for _, r := range f.Rings {
		c.Rings = append(c.Rings, Ring(r))
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Decode reads a chart definition. Scalars start from the stock chart, so
// only the keys being changed need to be written. A [[quadrants]] or
// [[rings]] list replaces the stock list as a whole. Unknown keys are
// rejected.
func Decode(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read chart definition")
	}

	f := DefaultFile()
	f.Order, f.Quadrants, f.Rings = nil, nil, nil

	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse chart definition")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig,
			"unknown keys in chart definition: %s", strings.Join(keys, ", "))
	}

	def := Default()
	if len(f.Order) == 0 {
		f.Order = def.Order
	}
	if len(f.Quadrants) == 0 {
		f.Quadrants = ToFile(def).Quadrants
	}
	if len(f.Rings) == 0 {
		f.Rings = ToFile(def).Rings
	}
	return f.Config()
}

// LoadFile reads and validates the chart definition at path.
func LoadFile(path string) (Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart definition %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open chart definition %s", path)
	}
	defer fh.Close()
	return Decode(fh)
}

// Encode writes c as a TOML chart definition.
func Encode(w io.Writer, c Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(ToFile(c)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode chart definition")
	}
	_, err := w.Write(buf.Bytes())
	return err
}
