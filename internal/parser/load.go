package parser

import (
	"fmt"

	"girgen/internal/gir"
	"girgen/internal/model"
)

// ParseRepository walks one namespace element and inserts every declared
// entity into the registry. A parse failure here corrupts the registry
// and is fatal to the run.
func ParseRepository(ctx *Context, repo *gir.Repository, reg *model.Registry) error {
	ns := repo.Namespace
	local := ctx.WithNamespace(ns)

	put := func(localName string, e model.Entity, err error) error {
		if err != nil {
			return fmt.Errorf("%s.%s: %w", ns, localName, err)
		}
		return reg.Put(model.Name{Namespace: ns, Local: localName}, e)
	}

	for _, el := range repo.Root.Nodes {
		var (
			e   model.Entity
			err error
		)
		name := el.Attr("name")
		switch el.Name {
		case "constant":
			e, err = parseConstant(local, el)
		case "function":
			e, err = parseFunction(local, el)
		case "enumeration":
			e, err = parseEnum(local, el)
		case "bitfield":
			e, err = parseFlags(local, el)
		case "callback":
			e, err = parseCallback(local, el)
		case "record":
			e, err = parseStruct(local, el)
		case "union":
			e, err = parseUnion(local, el)
		case "class":
			e, err = parseObject(local, el)
		case "interface":
			e, err = parseInterface(local, el)
		case "boxed":
			name = el.AttrGLib("name")
			e, err = parseBoxed(local, el)
		default:
			// alias, docsection and friends carry no entity.
			continue
		}
		if perr := put(name, e, err); perr != nil {
			return perr
		}
	}
	return nil
}

// LoadAll parses repo and, transitively, every namespace it includes,
// into a single registry. The returned registry is still unfrozen so the
// generator can lift embedded declarations before emission.
func LoadAll(searchPath []string, repo *gir.Repository) (*Context, *model.Registry, error) {
	ctx := &Context{
		Namespace: repo.Namespace,
		Repos:     map[string]*gir.Repository{repo.Namespace: repo},
	}
	reg := model.NewRegistry()

	queue := []*gir.Repository{repo}
	for len(queue) > 0 {
		r := queue[0]
		queue = queue[1:]
		if err := ParseRepository(ctx, r, reg); err != nil {
			return nil, nil, err
		}
		for _, inc := range r.Includes {
			if _, done := ctx.Repos[inc.Name]; done {
				continue
			}
			dep, err := gir.LoadPath(searchPath, inc.Name, inc.Version)
			if err != nil {
				return nil, nil, fmt.Errorf("dependency %s-%s: %w", inc.Name, inc.Version, err)
			}
			ctx.Repos[inc.Name] = dep
			queue = append(queue, dep)
		}
	}
	return ctx, reg, nil
}
