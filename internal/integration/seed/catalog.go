// Package seed reads emission catalogs from YAML documents.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/carbon-tracker/backend/internal/domain/entity"
)

//go:embed activity_types.yaml
var defaultCatalog []byte

type catalogFile struct {
	ActivityTypes []activityTypeYAML `yaml:"activity_types"`
}

type activityTypeYAML struct {
	ID             string  `yaml:"id"`
	Slug           string  `yaml:"slug"`
	Name           string  `yaml:"name"`
	Unit           string  `yaml:"unit"`
	EmissionFactor float64 `yaml:"emission_factor"`
	Icon           string  `yaml:"icon"`
	Category       string  `yaml:"category"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() ([]*entity.ActivityType, error) {
	return ReadCatalog(bytes.NewReader(defaultCatalog))
}

// LoadCatalogFile reads a catalog from a YAML file on disk.
func LoadCatalogFile(path string) ([]*entity.ActivityType, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return ReadCatalog(f)
}

// ReadCatalog decodes a YAML catalog document.
func ReadCatalog(r io.Reader) ([]*entity.ActivityType, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	types := make([]*entity.ActivityType, 0, len(file.ActivityTypes))
	for _, t := range file.ActivityTypes {
		types = append(types, &entity.ActivityType{
			ID:             t.ID,
			Slug:           t.Slug,
			Name:           t.Name,
			Unit:           t.Unit,
			EmissionFactor: t.EmissionFactor,
			Icon:           t.Icon,
			Category:       t.Category,
		})
	}
	return types, nil
}

// Catalog returns the catalog in path, or the built-in one when path is empty.
func Catalog(path string) ([]*entity.ActivityType, error) {
	if path == "" {
		return DefaultCatalog()
	}
	return LoadCatalogFile(path)
}
