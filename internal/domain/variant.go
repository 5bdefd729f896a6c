package domain

// VariantSpec is the configured form of a variant: corpora are referenced by name.
type VariantSpec struct {
	Name   string
	Weight int
	// FirstNames lists corpus names whose entries are concatenated in order.
	FirstNames []string
	Surnames   []string
	Template   JokeTemplate
}

// Variant is a variant with its corpora loaded.
type Variant struct {
	Name       string
	Weight     int
	FirstNames []string
	Surnames   []string
	Template   JokeTemplate
}

// FindVariantSpec returns the spec with the given name.
func FindVariantSpec(specs []VariantSpec, name string) (VariantSpec, bool) {
	for _, s := range specs {
		if s.Name == name {
			return s, true
		}
	}
	return VariantSpec{}, false
}
