package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

type RawBlock struct {
	Days   string   `mapstructure:"days" validate:"required"`
	Ranges []string `mapstructure:"ranges" validate:"required,min=1"`
}

type RawSection struct {
	ProfessorName     string     `mapstructure:"professorName" validate:"required"`
	ProfessorLastName string     `mapstructure:"professorLastName"`
	Rating            float64    `mapstructure:"rating" validate:"gte=0,lte=10"`
	Subject           string     `mapstructure:"subject" validate:"required"`
	Group             string     `mapstructure:"group" validate:"required"`
	Blocks            []RawBlock `mapstructure:"blocks" validate:"dive"`
}

type RawCatalog struct {
	Sections []RawSection `mapstructure:"sections" validate:"dive"`
}

// CatalogFromJson reads a catalog file with the following shape:
//
//	{"sections": [{"professorName": "Sandra", "professorLastName": "Diaz Santiago", "rating": 8.4,
//	  "subject": "ALGORITMOS", "group": "3BM1", "blocks": [{"days": "14", "ranges": ["1030-1200"]}]}]}
func CatalogFromJson(file string) (*Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, fmt.Errorf("cannot parse catalog file: %w", err)
	}

	var rawCatalog RawCatalog
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true, // Accept "days": 135 as well as "days": "135"
		Result:           &rawCatalog,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return nil, fmt.Errorf("cannot decode catalog file: %w", err)
	}
	return ProcessRawCatalog(rawCatalog)
}

// ProcessRawCatalog validates raw records and turns them into a catalog. The first invalid record aborts the whole catalog
func ProcessRawCatalog(rawCatalog RawCatalog) (*Catalog, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(rawCatalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	sections := make([]*Section, 0, len(rawCatalog.Sections))
	for i, rawSection := range rawCatalog.Sections {
		section, err := processRawSection(rawSection)
		if err != nil {
			return nil, fmt.Errorf("section %d (%v, %v): %w", i, rawSection.Subject, rawSection.Group, err)
		}
		sections = append(sections, section)
	}

	return NewCatalog(sections)
}

func processRawSection(rawSection RawSection) (*Section, error) {
	professor, err := NewProfessor(rawSection.ProfessorName, rawSection.ProfessorLastName, rawSection.Rating)
	if err != nil {
		return nil, err
	}

	blocks := make([]Block, 0)
	for _, rawBlock := range rawSection.Blocks {
		parsed, err := ParseBlocks(rawBlock.Days, rawBlock.Ranges...)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, parsed...)
	}

	return NewSection(professor, rawSection.Subject, rawSection.Group, blocks)
}
