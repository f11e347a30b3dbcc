package transforms

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed data/transforms.yaml
var transformsYaml []byte

var (
	transforms *TransformDefinitions
	setupOnce  sync.Once
)

// SetupClient loads the embedded rule tables, it is safe to call more than once
func SetupClient() {
	setupOnce.Do(func() {
		definitions, err := Load(transformsYaml)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load transforms definitions")
		}

		transforms = definitions

		log.Debug().
			Int("subwaylines", len(definitions.SubwayLineColours)).
			Int("brands", len(definitions.IntercityBrands)).
			Int("filters", len(definitions.CandidateFilters)).
			Msg("Loaded transforms definitions")
	})
}

func Load(source []byte) (*TransformDefinitions, error) {
	var definitions TransformDefinitions

	decoder := yaml.NewDecoder(bytes.NewReader(source))
	if err := decoder.Decode(&definitions); err != nil {
		return nil, err
	}

	for _, filter := range definitions.CandidateFilters {
		if err := filter.compile(); err != nil {
			return nil, err
		}
	}

	return &definitions, nil
}

func getTransforms() *TransformDefinitions {
	SetupClient()

	return transforms
}
