package benchmarks

import (
	"sort"

	"github.com/XiaoConstantine/sco-go/pkg/errors"
)

var registry = map[string]Benchmark{
	TwoVariableDesign{}.Name(): TwoVariableDesign{},
	WeldedBeamDesign{}.Name():  WeldedBeamDesign{},
}

// Get returns the registered benchmark with the given name.
func Get(name string) (Benchmark, error) {
	b, ok := registry[name]
	if !ok {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "unknown benchmark"),
			errors.Fields{"name": name, "available": List()},
		)
	}
	return b, nil
}

// List returns the registered benchmark names in sorted order.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
