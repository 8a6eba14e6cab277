package catalog

// Taxonomía canónica: seis categorías con seis artículos cada una.
func standardCategories() []Category {
	return []Category{
		{Name: "Electronics", Items: []string{"Laptop", "Keyboard", "Mouse", "Monitor", "Printer", "Projector"}},
		{Name: "Stationery", Items: []string{"Notebook", "Pen", "Pencil", "Stapler", "Highlighter", "Sticky Notes"}},
		{Name: "Furniture", Items: []string{"Chair", "Table", "Desk", "Cabinet", "Bookshelf", "Filing Cabinet"}},
		{Name: "Tools", Items: []string{"Screwdriver Set", "Hammer", "Wrench", "Pliers", "Drill Machine", "Measuring Tape"}},
		{Name: "Cleaning", Items: []string{"Broom", "Mop", "Dustpan", "Cleaning Cloth", "Disinfectant Spray", "Trash Bags"}},
		{Name: "Miscellaneous", Items: []string{"Whiteboard", "Bulletin Board", "First Aid Kit", "Fire Extinguisher", "Step Ladder", "Toolbox"}},
	}
}

// Default catálogo canónico.
func Default() *Catalog {
	return MustNew(standardCategories())
}

// Extended catálogo canónico más el equipamiento de laboratorio
// (Calculator, Microscope y la categoría "Lab Equipment").
func Extended() *Catalog {
	cats := standardCategories()
	for i := range cats {
		switch cats[i].Name {
		case "Electronics":
			cats[i].Items = append(cats[i].Items, "Calculator")
		case "Tools":
			cats[i].Items = append(cats[i].Items, "Microscope")
		}
	}
	cats = append(cats, Category{Name: "Lab Equipment", Items: []string{"Test Kit"}})
	return MustNew(cats)
}

// ForVariant devuelve el catálogo por nombre de variante ("standard" | "extended").
func ForVariant(variant string) (*Catalog, bool) {
	switch variant {
	case "", "standard":
		return Default(), true
	case "extended":
		return Extended(), true
	}
	return nil, false
}
