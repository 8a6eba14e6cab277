// Package catalogfile carga una taxonomía de artículos desde un archivo YAML, JSON o TOML.
package catalogfile

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/jhoicas/inventario-mmg/internal/domain/catalog"
)

// document forma esperada del archivo:
//
//	categories:
//	  - name: Electronics
//	    items: [Laptop, Keyboard]
type document struct {
	Categories []catalog.Category `mapstructure:"categories"`
}

// Load lee el archivo y construye el catálogo. El formato se deduce de la extensión.
func Load(path string) (*catalog.Catalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("leer catálogo %s: %w", path, err)
	}
	var doc document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("decodificar catálogo %s: %w", path, err)
	}
	cat, err := catalog.New(doc.Categories)
	if err != nil {
		return nil, fmt.Errorf("catálogo %s: %w", path, err)
	}
	return cat, nil
}

// Resolve elige el catálogo de arranque: el archivo si está definido, si no la variante incorporada.
func Resolve(file, variant string) (*catalog.Catalog, error) {
	if strings.TrimSpace(file) != "" {
		return Load(file)
	}
	cat, ok := catalog.ForVariant(variant)
	if !ok {
		return nil, fmt.Errorf("variante de catálogo desconocida %q", variant)
	}
	return cat, nil
}
