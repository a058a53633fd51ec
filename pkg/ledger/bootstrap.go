package ledger

// Bootstrap is the startup data the ledger is built from.
type Bootstrap struct {
	Events  []EventSpec  `json:"events" yaml:"events"`
	Clients []ClientSpec `json:"clients" yaml:"clients"`
}

// Build constructs the catalog, registry and engine from b.
func Build(b Bootstrap, opts ...EngineOption) (*Engine, error) {
	catalog, err := NewCatalog(b.Events)
	if err != nil {
		return nil, err
	}
	registry, err := NewRegistry(b.Clients)
	if err != nil {
		return nil, err
	}
	return NewEngine(catalog, registry, opts...), nil
}
