package config

import (
	"fmt"
	"sort"
)

// Band colours values strictly above Above.
type Band struct {
	Above float64 `yaml:"above"`
	Color string  `yaml:"color"`
}

// Palette is a set of magnitude bands with a colour for values below all of them.
type Palette struct {
	Bands   []Band `yaml:"bands"`
	Default string `yaml:"default"`
}

// ColorFor returns the colour of the highest band v exceeds.
// Bands must be sorted by descending threshold (Load does this).
func (p Palette) ColorFor(v float64) string {
	for _, b := range p.Bands {
		if v > b.Above {
			return b.Color
		}
	}
	return p.Default
}

// PublicationStyle holds the publication graph's colours.
type PublicationStyle struct {
	Bestseller string  `yaml:"bestseller"`
	Palette    Palette `yaml:"palette"`
}

// CategoryStyle holds the category graph's colours.
type CategoryStyle struct {
	Palette Palette `yaml:"palette"`
}

// Style groups the visual constants of both graphs.
type Style struct {
	Publications PublicationStyle `yaml:"publications"`
	Categories   CategoryStyle    `yaml:"categories"`
}

// DefaultStyle returns the colours the front end was designed around.
func DefaultStyle() Style {
	return Style{
		Publications: PublicationStyle{
			Bestseller: "#ff6b35",
			Palette: Palette{
				Bands: []Band{
					{Above: 50000, Color: "#4ecdc4"},
					{Above: 10000, Color: "#45b7d1"},
				},
				Default: "#96ceb4",
			},
		},
		Categories: CategoryStyle{
			Palette: Palette{
				Bands: []Band{
					{Above: 500, Color: "#ff6b35"},
					{Above: 200, Color: "#4ecdc4"},
					{Above: 100, Color: "#45b7d1"},
				},
				Default: "#96ceb4",
			},
		},
	}
}

// Validate checks that no colour is empty.
func (s Style) Validate() error {
	if s.Publications.Bestseller == "" {
		return fmt.Errorf("invalid config: style.publications.bestseller is empty")
	}
	if err := s.Publications.Palette.validate("style.publications.palette"); err != nil {
		return err
	}
	return s.Categories.Palette.validate("style.categories.palette")
}

func (p Palette) validate(path string) error {
	if p.Default == "" {
		return fmt.Errorf("invalid config: %s.default is empty", path)
	}
	for i, b := range p.Bands {
		if b.Color == "" {
			return fmt.Errorf("invalid config: %s.bands[%d].color is empty", path, i)
		}
	}
	return nil
}

func (s *Style) normalize() {
	s.Publications.Palette.sortBands()
	s.Categories.Palette.sortBands()
}

func (p *Palette) sortBands() {
	sort.SliceStable(p.Bands, func(i, j int) bool {
		return p.Bands[i].Above > p.Bands[j].Above
	})
}
