// Package seed loads the bundled strain catalog and the optional demo account.
package seed

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/greencart/internal/db"
	"github.com/greencart/internal/service"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Strains []strainRecord `yaml:"strains"`
}

type strainRecord struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	THC         []float64 `yaml:"thc"`
	CBD         []float64 `yaml:"cbd"`
	Price       float64   `yaml:"price"`
	Parents     []string  `yaml:"parents"`
	Aromas      []string  `yaml:"aromas"`
	Effects     []string  `yaml:"effects"`
	Description string    `yaml:"description"`
	MainURL     string    `yaml:"main_url"`
	ImageURL    string    `yaml:"image_url"`
}

// DefaultCatalog returns the bundled strains.
func DefaultCatalog() ([]service.StrainInput, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) ([]service.StrainInput, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Strains) == 0 {
		return nil, errors.New("catalog has no strains")
	}

	inputs := make([]service.StrainInput, 0, len(file.Strains))
	for i, rec := range file.Strains {
		if rec.Name == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		thcMin, thcMax := bounds(rec.THC)
		cbdMin, cbdMax := bounds(rec.CBD)
		inputs = append(inputs, service.StrainInput{
			Name:        rec.Name,
			THCMin:      thcMin,
			THCMax:      thcMax,
			CBDMin:      cbdMin,
			CBDMax:      cbdMax,
			Price:       rec.Price,
			Type:        rec.Type,
			Parents:     rec.Parents,
			Aromas:      rec.Aromas,
			Effects:     rec.Effects,
			Description: rec.Description,
			MainURL:     rec.MainURL,
			ImageURL:    rec.ImageURL,
		})
	}
	return inputs, nil
}

// bounds reads a [min, max] pair; a single value is both.
func bounds(v []float64) (float64, float64) {
	switch len(v) {
	case 0:
		return 0, 0
	case 1:
		return v[0], v[0]
	default:
		return v[0], v[1]
	}
}

// Options controls Apply.
type Options struct {
	UserEmail    string
	UserPassword string
}

// Apply upserts the bundled catalog and, when credentials are given,
// creates the demo account. It returns the number of strains written.
func Apply(gdb *gorm.DB, catalog *service.CatalogService, opts Options, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	strains, err := DefaultCatalog()
	if err != nil {
		return 0, err
	}

	for _, input := range strains {
		if _, err := catalog.Upsert(input); err != nil {
			return 0, fmt.Errorf("seed strain %s: %w", input.Name, err)
		}
	}
	logger.Info("catalog seeded", zap.Int("strains", len(strains)))

	if err := db.EnsureUser(gdb, opts.UserEmail, opts.UserPassword, ""); err != nil {
		return len(strains), fmt.Errorf("seed user: %w", err)
	}
	if opts.UserEmail != "" && opts.UserPassword != "" {
		logger.Info("demo user ensured", zap.String("email", opts.UserEmail))
	}

	return len(strains), nil
}
