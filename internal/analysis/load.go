package analysis

import (
	"fmt"

	"github.com/jarredhawkins/urscript-lsp/internal/catalog"
	"github.com/jarredhawkins/urscript-lsp/internal/config"
)

// LoadSettings reads the configuration at root and the catalog it names
func LoadSettings(root string) (*config.Config, *catalog.Catalog, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.Load(cfg.CatalogPaths(root)...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalogs: %w", err)
	}
	return cfg, cat, nil
}

// Open creates an analyzer for root from the settings found there
func Open(root string) (*Analyzer, error) {
	cfg, cat, err := LoadSettings(root)
	if err != nil {
		return nil, err
	}
	return New(root, cfg, cat), nil
}

// ReloadSettings re-reads configuration and catalogs from disk. On error the
// current settings stay in effect.
func (a *Analyzer) ReloadSettings() error {
	cfg, cat, err := LoadSettings(a.root)
	if err != nil {
		return err
	}
	a.Reload(cfg, cat)
	return nil
}

// SettingsFiles lists the files whose changes should trigger ReloadSettings
func (a *Analyzer) SettingsFiles() []string {
	if a.root == "" {
		return nil
	}
	files := []string{config.Path(a.root)}
	return append(files, a.Config().CatalogPaths(a.root)...)
}
