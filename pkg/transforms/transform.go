package transforms

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitplanner/pkg/util"
)

const (
	ColourWalking   = "walking"
	ColourSubway    = "subway"
	ColourBus       = "bus"
	ColourIntercity = "intercity"
)

type TransformDefinitions struct {
	SubwayLineColours map[string]string      `yaml:"SubwayLineColours"`
	DefaultColours    map[string]string      `yaml:"DefaultColours"`
	IntercityBrands   []*IntercityBrandRule  `yaml:"IntercityBrands"`
	IntercityColours  []*IntercityColourRule `yaml:"IntercityColours"`
	CandidateFilters  []*CandidateFilter     `yaml:"CandidateFilters"`
}

type IntercityBrandRule struct {
	Contains []string `yaml:"Contains"`
	Name     string   `yaml:"Name"`
}

type IntercityColourRule struct {
	Contains []string `yaml:"Contains"`
	Colour   string   `yaml:"Colour"`
}

// CandidateEnvironment is the set of fields a CandidateFilter expression can reference
type CandidateEnvironment struct {
	Group    string
	BusClass string
	TypeCode int
	Minutes  int
	Fare     int
	Text     string
	IsNight  bool
}

type CandidateFilter struct {
	Name    string `yaml:"Name"`
	Exclude string `yaml:"Exclude"`

	program *vm.Program
}

func (f *CandidateFilter) compile() error {
	program, err := expr.Compile(f.Exclude, expr.Env(CandidateEnvironment{}), expr.AsBool())
	if err != nil {
		return fmt.Errorf("compiling candidate filter %s: %w", f.Name, err)
	}

	f.program = program
	return nil
}

// Excludes reports whether the candidate described by env should be dropped
func (f *CandidateFilter) Excludes(env CandidateEnvironment) bool {
	if f.program == nil {
		return false
	}

	output, err := expr.Run(f.program, env)
	if err != nil {
		log.Error().Err(err).Str("filter", f.Name).Msg("Failed to evaluate candidate filter")
		return false
	}

	excluded, _ := output.(bool)
	return excluded
}

func containsAny(s string, substrings []string) bool {
	for _, substring := range substrings {
		if strings.Contains(s, substring) {
			return true
		}
	}

	return false
}

func (t *TransformDefinitions) DefaultColour(mode string) string {
	return t.DefaultColours[mode]
}

func (t *TransformDefinitions) SubwayLineColour(lineName string) string {
	if colour, ok := t.SubwayLineColours[lineName]; ok {
		return colour
	}

	if colour, ok := t.SubwayLineColours[util.RemoveWhitespace(lineName)]; ok {
		return colour
	}

	return t.DefaultColour(ColourSubway)
}

func (t *TransformDefinitions) IntercityBrand(text string) (string, bool) {
	for _, brand := range t.IntercityBrands {
		if containsAny(text, brand.Contains) {
			return brand.Name, true
		}
	}

	return "", false
}

func (t *TransformDefinitions) IntercityColour(className string) string {
	for _, colour := range t.IntercityColours {
		if containsAny(className, colour.Contains) {
			return colour.Colour
		}
	}

	return t.DefaultColour(ColourIntercity)
}

func (t *TransformDefinitions) ExcludesCandidate(env CandidateEnvironment) bool {
	for _, filter := range t.CandidateFilters {
		if filter.Excludes(env) {
			return true
		}
	}

	return false
}

func DefaultColour(mode string) string {
	return getTransforms().DefaultColour(mode)
}

// SubwayLineColour looks up the line colour by exact then whitespace-stripped name, falling back to the generic subway colour
func SubwayLineColour(lineName string) string {
	return getTransforms().SubwayLineColour(lineName)
}

// IntercityBrand finds the first known service brand mentioned in text
func IntercityBrand(text string) (string, bool) {
	return getTransforms().IntercityBrand(text)
}

func IntercityColour(className string) string {
	return getTransforms().IntercityColour(className)
}

func ExcludesCandidate(env CandidateEnvironment) bool {
	return getTransforms().ExcludesCandidate(env)
}
