package service

// Config carries the fixed tuning of the lookup pipeline. It is immutable
// after construction and shared by the resolver and hydrator.
type Config struct {
	// PageSize is the fixed number of records per result page.
	PageSize int

	// Per-tier resolution caps.
	TitleCap       int
	SKUCap         int
	AttributeCap   int
	DescriptionCap int
	// BrowseCap bounds category browse mode.
	BrowseCap int

	// AttributeTaxonomies are the classification taxonomies searched by the
	// attribute tier.
	AttributeTaxonomies []string

	// GenuineTaxonomy is the taxonomy whose first term fills the gn field of
	// list records.
	GenuineTaxonomy string

	// PriceRoles are the customer roles whose price overrides are exposed.
	PriceRoles []string
}

// DefaultConfig returns the pipeline tuning the live store runs with.
func DefaultConfig() Config {
	return Config{
		PageSize:            50,
		TitleCap:            1000,
		SKUCap:              1000,
		AttributeCap:        500,
		DescriptionCap:      200,
		BrowseCap:           2000,
		AttributeTaxonomies: []string{"pa_gnisios_kodikos", "pa_antistixia"},
		GenuineTaxonomy:     "pa_gnisios_kodikos",
		PriceRoles:          []string{"customer", "subscriber", "b2b_gold", "b2b_platinum"},
	}
}
