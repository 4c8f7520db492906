package driver

import (
	"wgslfront/internal/ast"
)

// DeclSummary is one global declaration reduced to what cross-file tooling
// needs: what it is, what it is called and which globals it uses.
type DeclSummary struct {
	Kind  string   `msgpack:"kind" json:"kind"`
	Name  string   `msgpack:"name" json:"name,omitempty"`
	Stage string   `msgpack:"stage" json:"stage,omitempty"`
	Deps  []string `msgpack:"deps" json:"deps,omitempty"`
}

// Summary describes a parsed module without its arenas.
type Summary struct {
	Decls    []DeclSummary `msgpack:"decls" json:"decls"`
	Enable   []string      `msgpack:"enable" json:"enable,omitempty"`
	Requires []string      `msgpack:"requires" json:"requires,omitempty"`
	Filters  int           `msgpack:"filters" json:"filters,omitempty"`
}

// Summarize extracts the summary of a parsed unit; nil yields nil.
func Summarize(unit *ast.TranslationUnit) *Summary {
	if unit == nil {
		return nil
	}
	s := &Summary{
		Decls:   make([]DeclSummary, 0, unit.Decls.Len()),
		Filters: unit.DiagnosticFilters.Len(),
	}
	for _, e := range unit.EnableExtensions.List() {
		s.Enable = append(s.Enable, e.String())
	}
	for _, e := range unit.LanguageExtensions.List() {
		s.Requires = append(s.Requires, e.String())
	}
	for _, id := range unit.DeclIDs() {
		d := unit.Decl(id)
		ds := DeclSummary{Kind: d.Kind.String(), Name: d.Name().Name}
		if d.Kind == ast.DeclFn && d.Fn.EntryPoint != nil {
			ds.Stage = d.Fn.EntryPoint.Stage.String()
		}
		for _, dep := range d.Dependencies.List() {
			ds.Deps = append(ds.Deps, dep.Name)
		}
		s.Decls = append(s.Decls, ds)
	}
	return s
}

// EntryPoints lists "stage name" for every entry point, in source order.
func (s *Summary) EntryPoints() []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, d := range s.Decls {
		if d.Stage != "" {
			out = append(out, d.Stage+" "+d.Name)
		}
	}
	return out
}
