package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"opencanada-grants-parser/internal/scraper"
)

// LoadSelectors resolves the field extraction strategy for this run. With no
// selectors_file configured, the compiled-in defaults for the grants listing
// markup are used; a file overrides them without a code change.
func (c *Config) LoadSelectors() (*scraper.Selectors, error) {
	if c.SelectorsFile == "" {
		return scraper.DefaultSelectors(), nil
	}

	filePath := c.SelectorsFile
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join("configs", filePath)
	}

	return LoadSelectorsFile(filePath)
}

// LoadSelectorsFile loads and validates a selectors YAML file.
func LoadSelectorsFile(filePath string) (*scraper.Selectors, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open selectors file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Printf("Warning: failed to close selectors file: %v", closeErr)
		}
	}()

	var selectors scraper.Selectors
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selectors YAML: %w", err)
	}

	if err := validateSelectors(&selectors); err != nil {
		return nil, err
	}

	return &selectors, nil
}

func validateSelectors(s *scraper.Selectors) error {
	if s.Item == "" {
		return fmt.Errorf("item selector is required")
	}
	if s.Info == "" {
		return fmt.Errorf("info selector is required")
	}
	if s.Generic == "" {
		return fmt.Errorf("generic selector is required")
	}
	if s.Name == "" {
		return fmt.Errorf("name selector is required")
	}
	if s.Price == "" {
		return fmt.Errorf("price selector is required")
	}
	if s.DateCheck == "" {
		return fmt.Errorf("date_check selector is required")
	}
	if s.Paragraph == "" {
		return fmt.Errorf("paragraph selector is required")
	}
	if s.Labels.AgreementNumber == "" || s.Labels.Description == "" ||
		s.Labels.Organization == "" || s.Labels.Duration == "" || s.Labels.Location == "" {
		return fmt.Errorf("all field labels are required")
	}

	return nil
}
