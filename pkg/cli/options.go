// Package cli wires the deployment orchestrator (§4.6) and the cobra root
// command together.
package cli

// Options are the per-invocation parameters derived from CLI flags, shared
// between the top-level run and every cascade it triggers.
type Options struct {
	Locations     []string
	AppendFiles   []string
	RemoveFiles   []string
	Base          string
	DefinitionRef string
	RevFrom       string
	RevTo         string
	Yes           bool
}

// forCascade strips the explicit append/remove lists and revision bounds, as
// required by §4.6 point 3: cascades always run with empty lists and null
// bounds regardless of what the top-level invocation requested (§8 property
// 7, "cascade isolation").
func (o Options) forCascade() Options {
	return Options{
		Locations: o.Locations,
		Yes:       o.Yes,
	}
}
