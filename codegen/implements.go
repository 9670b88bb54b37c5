package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Yamashou/gqlir/schema"
)

var ErrInterfaceCycle = errors.New("interface cycle")

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// implementsGraph resolves, for every type, the set of field names it inherits
// from its direct and transitive interfaces. Interfaces are resolved before
// anything that implements them.
type implementsGraph struct {
	interfaces map[string]*schema.Type
	state      map[string]visitState
	inherited  map[string]map[string]bool
}

func newImplementsGraph(info *schema.Info) *implementsGraph {
	g := &implementsGraph{
		interfaces: map[string]*schema.Type{},
		state:      map[string]visitState{},
		inherited:  map[string]map[string]bool{},
	}
	for _, t := range info.Types {
		if t.Kind == schema.KindInterface {
			g.interfaces[t.Name] = t
		}
	}
	return g
}

// inheritedFields returns the names of fields declared on any interface t
// implements. Names that are not known interfaces are ignored.
func (g *implementsGraph) inheritedFields(t *schema.Type) (map[string]bool, error) {
	return g.resolve(t, nil)
}

func (g *implementsGraph) resolve(t *schema.Type, path []string) (map[string]bool, error) {
	if t.Kind == schema.KindInterface {
		switch g.state[t.Name] {
		case visited:
			return g.inherited[t.Name], nil
		case visiting:
			return nil, fmt.Errorf("%w: %s", ErrInterfaceCycle, strings.Join(append(path, t.Name), " -> "))
		}
		g.state[t.Name] = visiting
	}

	names := map[string]bool{}
	for _, name := range t.Interfaces {
		intf, ok := g.interfaces[name]
		if !ok {
			continue
		}
		parent, err := g.resolve(intf, append(path, t.Name))
		if err != nil {
			return nil, err
		}
		for _, f := range intf.Fields {
			names[f.Name] = true
		}
		for n := range parent {
			names[n] = true
		}
	}

	if t.Kind == schema.KindInterface {
		g.state[t.Name] = visited
		g.inherited[t.Name] = names
	}
	return names, nil
}
