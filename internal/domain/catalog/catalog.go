// Package catalog contiene la taxonomía cerrada de artículos (categoría -> nombres válidos).
//
// Un Catalog se construye una vez al arrancar y se inyecta en los casos de uso;
// es inmutable, por lo que puede compartirse entre goroutines sin sincronización.
package catalog

import (
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-mmg/internal/domain"
)

// Category una categoría y sus artículos, en el orden en que se muestran.
type Category struct {
	Name  string   `json:"name" mapstructure:"name"`
	Items []string `json:"items" mapstructure:"items"`
}

// Catalog tabla categoría -> artículos.
type Catalog struct {
	categories []Category
	items      map[string]map[string]struct{}
	categoryOf map[string]string
}

// New valida y construye el catálogo. Rechaza categorías vacías o duplicadas, nombres en blanco
// y artículos repetidos en dos categorías (CategoryOf debe ser una función).
func New(categories []Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("catálogo vacío")
	}
	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		items:      make(map[string]map[string]struct{}, len(categories)),
		categoryOf: make(map[string]string),
	}
	for _, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, fmt.Errorf("categoría sin nombre")
		}
		if _, dup := c.items[name]; dup {
			return nil, fmt.Errorf("categoría duplicada: %q", name)
		}
		if len(cat.Items) == 0 {
			return nil, fmt.Errorf("categoría %q sin artículos", name)
		}
		set := make(map[string]struct{}, len(cat.Items))
		items := make([]string, 0, len(cat.Items))
		for _, it := range cat.Items {
			it = strings.TrimSpace(it)
			if it == "" {
				return nil, fmt.Errorf("artículo en blanco en %q", name)
			}
			if other, dup := c.categoryOf[it]; dup {
				return nil, fmt.Errorf("artículo %q repetido en %q y %q", it, other, name)
			}
			set[it] = struct{}{}
			c.categoryOf[it] = name
			items = append(items, it)
		}
		c.items[name] = set
		c.categories = append(c.categories, Category{Name: name, Items: items})
	}
	return c, nil
}

// MustNew como New pero entra en pánico; solo para tablas fijas conocidas.
func MustNew(categories []Category) *Catalog {
	c, err := New(categories)
	if err != nil {
		panic(err)
	}
	return c
}

// Validate indica si itemName pertenece a category. Función pura.
func (c *Catalog) Validate(category, itemName string) bool {
	set, ok := c.items[category]
	if !ok {
		return false
	}
	_, ok = set[itemName]
	return ok
}

// Check como Validate pero devuelve domain.ErrInvalidItem con el detalle.
func (c *Catalog) Check(category, itemName string) error {
	set, ok := c.items[category]
	if !ok {
		return fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidItem, category)
	}
	if _, ok := set[itemName]; !ok {
		return fmt.Errorf("%w: %q no es un artículo válido de %q (válidos: %s)",
			domain.ErrInvalidItem, itemName, category, strings.Join(c.Items(category), ", "))
	}
	return nil
}

// CategoryOf devuelve la categoría de un artículo.
func (c *Catalog) CategoryOf(itemName string) (string, bool) {
	cat, ok := c.categoryOf[itemName]
	return cat, ok
}

// Categories nombres de categoría en orden.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.Name
	}
	return out
}

// Items artículos de una categoría (copia); nil si no existe.
func (c *Catalog) Items(category string) []string {
	for _, cat := range c.categories {
		if cat.Name == category {
			return append([]string(nil), cat.Items...)
		}
	}
	return nil
}

// All copia completa de la tabla, para exponerla en la API.
func (c *Catalog) All() []Category {
	out := make([]Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = Category{Name: cat.Name, Items: append([]string(nil), cat.Items...)}
	}
	return out
}
