package cli

import (
	"context"
	"testing"

	"github.com/r3c/creep/pkg/definition"
)

func TestResolveNamesExpandsStar(t *testing.T) {
	def := &definition.Definition{
		Environment: definition.Environment{
			"a": {},
			"b": {},
		},
	}

	names := resolveNames(def, []string{"*"})
	if len(names) != 2 {
		t.Fatalf("resolveNames(*) = %v, want 2 names", names)
	}
}

func TestResolveNamesPassesThroughExplicitList(t *testing.T) {
	def := &definition.Definition{Environment: definition.Environment{"a": {}}}

	names := resolveNames(def, []string{"a", "missing"})
	if len(names) != 2 || names[0] != "a" || names[1] != "missing" {
		t.Fatalf("resolveNames = %v, want [a missing] preserved verbatim", names)
	}
}

func TestRunDefinitionSkipsLocationsWithoutConnection(t *testing.T) {
	def := &definition.Definition{
		Environment: definition.Environment{
			"default": {Connection: ""},
		},
	}

	ok := runDefinition(context.Background(), def, []string{"default"}, Options{})
	if !ok {
		t.Error("a connection-less location should be skipped successfully, not fail the run")
	}
}

func TestRunDefinitionWarnsOnUnknownLocation(t *testing.T) {
	def := &definition.Definition{Environment: definition.Environment{}}

	ok := runDefinition(context.Background(), def, []string{"ghost"}, Options{})
	if !ok {
		t.Error("an unknown location name should warn and continue, not fail the run")
	}
}

func TestRunDefinitionWithCascadeAndTwoNamesSucceeds(t *testing.T) {
	cascade := &definition.Definition{
		Environment: definition.Environment{},
	}
	def := &definition.Definition{
		Environment: definition.Environment{
			"default": {},
			"staging": {},
		},
		Cascades: []*definition.Definition{cascade},
	}

	// runDefinition recurses into every cascade once per requested location
	// name (§4.6 points 1-4, a literal per-name reading); with two names and
	// one cascade that is two cascade invocations, each a no-op since the
	// cascade's own environment is empty.
	ok := runDefinition(context.Background(), def, []string{"default", "staging"}, Options{})
	if !ok {
		t.Fatal("expected success")
	}
}
