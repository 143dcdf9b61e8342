package bridgegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	bridgePath = "github.com/louisbranch/realmbridge/internal/bridge"
	realmPath  = "github.com/louisbranch/realmbridge/internal/bridge/realm"
)

// File is the generated bridge file for one package.
type File struct {
	Package    string
	Source     []byte
	Interfaces []string
	Enums      []string
	// Skipped lists interfaces that cannot be bridged, with the reason.
	Skipped []string
}

type stubDef struct {
	name    string
	stub    string
	methods []*types.Func
}

// pkgNames are the local names of the packages generated code calls into.
type pkgNames struct {
	bridge  string
	realm   string
	reflect string
}

type enumDef struct {
	name      string
	constants []string
}

// Generate renders forwarding stubs for every exported interface of pkg, a
// RegisterBridgeStubs function installing them, and a RegisterRealmTypes
// function declaring the package's interfaces and enums to a realm.
func Generate(pkg *types.Package) (File, error) {
	file := File{Package: pkg.Path()}
	scope := pkg.Scope()

	var stubs []stubDef
	var enums []enumDef
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !tn.Exported() || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}
		switch underlying := named.Underlying().(type) {
		case *types.Interface:
			if !underlying.IsMethodSet() {
				file.Skipped = append(file.Skipped, name+": constraint interface")
				continue
			}
			def, reason := interfaceStub(scope, name, underlying)
			if reason != "" {
				file.Skipped = append(file.Skipped, name+": "+reason)
				continue
			}
			stubs = append(stubs, def)
			file.Interfaces = append(file.Interfaces, name)
		case *types.Basic:
			if underlying.Info()&(types.IsInteger|types.IsString) == 0 {
				continue
			}
			if constants := enumConstants(scope, named); len(constants) > 0 {
				enums = append(enums, enumDef{name: name, constants: constants})
				file.Enums = append(file.Enums, name)
			}
		}
	}

	imports := newImportSet(pkg)
	names := pkgNames{
		bridge: imports.add(bridgePath, "bridge"),
		realm:  imports.add(realmPath, "realm"),
	}
	if len(stubs) > 0 {
		names.reflect = imports.add("reflect", "reflect")
	}
	for _, def := range stubs {
		for _, m := range def.methods {
			types.TypeString(m.Type(), imports.qualifier)
		}
	}

	var buf bytes.Buffer
	buf.WriteString("// Code generated by bridgegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg.Name())
	imports.write(&buf)

	for _, def := range stubs {
		writeStub(&buf, def, imports, names)
	}
	writeRegisterStubs(&buf, stubs, names)
	writeRegisterTypes(&buf, stubs, enums, names)

	source, err := format.Source(buf.Bytes())
	if err != nil {
		return File{}, fmt.Errorf("format %s: %w", pkg.Path(), err)
	}
	file.Source = source
	return file, nil
}

func interfaceStub(scope *types.Scope, name string, iface *types.Interface) (stubDef, string) {
	def := stubDef{name: name, stub: lowerFirst(name) + "Stub"}
	if scope.Lookup(def.stub) != nil {
		return stubDef{}, def.stub + " is already declared"
	}
	for i := range iface.NumMethods() {
		m := iface.Method(i)
		if !m.Exported() {
			return stubDef{}, "unexported method " + m.Name()
		}
		def.methods = append(def.methods, m)
	}
	return def, ""
}

func enumConstants(scope *types.Scope, named *types.Named) []string {
	var constants []*types.Const
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || !c.Exported() || !types.Identical(c.Type(), named) {
			continue
		}
		constants = append(constants, c)
	}
	sort.Slice(constants, func(i, j int) bool { return constants[i].Pos() < constants[j].Pos() })
	names := make([]string, len(constants))
	for i, c := range constants {
		names[i] = c.Name()
	}
	return names
}

var resultName = regexp.MustCompile(`^r[0-9]+$`)

func writeStub(buf *bytes.Buffer, def stubDef, imports *importSet, names pkgNames) {
	fmt.Fprintf(buf, "type %s struct{ inv %s.Invoker }\n\n", def.stub, names.bridge)
	for _, m := range def.methods {
		sig := m.Type().(*types.Signature)
		params := paramNames(sig, imports)

		var decl []string
		for i, name := range params {
			typ := sig.Params().At(i).Type()
			if sig.Variadic() && i == len(params)-1 {
				decl = append(decl, name+" ..."+types.TypeString(typ.(*types.Slice).Elem(), imports.qualifier))
				continue
			}
			decl = append(decl, name+" "+types.TypeString(typ, imports.qualifier))
		}
		results := make([]string, sig.Results().Len())
		for i := range results {
			results[i] = types.TypeString(sig.Results().At(i).Type(), imports.qualifier)
		}

		fmt.Fprintf(buf, "func (s %s) %s(%s)", def.stub, m.Name(), strings.Join(decl, ", "))
		switch len(results) {
		case 0:
		case 1:
			buf.WriteString(" " + results[0])
		default:
			buf.WriteString(" (" + strings.Join(results, ", ") + ")")
		}
		buf.WriteString(" {\n")

		args := strconv.Quote(m.Name())
		if len(params) > 0 {
			args += ", " + strings.Join(params, ", ")
		}
		switch {
		case len(results) == 0:
			fmt.Fprintf(buf, "s.inv.MustInvoke(%s)\n", args)
		case isError(sig.Results().At(len(results) - 1).Type()):
			fmt.Fprintf(buf, "out, err := s.inv.Invoke(%s)\n", args)
			buf.WriteString("if err != nil {\n")
			zeros := make([]string, 0, len(results))
			for i, typ := range results[:len(results)-1] {
				fmt.Fprintf(buf, "var r%d %s\n", i, typ)
				zeros = append(zeros, fmt.Sprintf("r%d", i))
			}
			fmt.Fprintf(buf, "return %s\n}\n", strings.Join(append(zeros, "err"), ", "))
			fmt.Fprintf(buf, "return %s\n", outs(results, names))
		default:
			fmt.Fprintf(buf, "out := s.inv.MustInvoke(%s)\n", args)
			fmt.Fprintf(buf, "return %s\n", outs(results, names))
		}
		buf.WriteString("}\n\n")
	}
}

func outs(results []string, names pkgNames) string {
	parts := make([]string, len(results))
	for i, typ := range results {
		parts[i] = fmt.Sprintf("%s.Out[%s](out, %d)", names.bridge, typ, i)
	}
	return strings.Join(parts, ", ")
}

// paramNames keeps declared names unless they are blank or would shadow a
// name the stub body uses.
func paramNames(sig *types.Signature, imports *importSet) []string {
	names := make([]string, sig.Params().Len())
	seen := make(map[string]bool, len(names))
	for i := range names {
		name := sig.Params().At(i).Name()
		if name == "" || name == "_" || name == "s" || name == "out" || name == "err" ||
			resultName.MatchString(name) || imports.uses(name) || seen[name] {
			name = fmt.Sprintf("p%d", i)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

func writeRegisterStubs(buf *bytes.Buffer, stubs []stubDef, names pkgNames) {
	buf.WriteString("// RegisterBridgeStubs registers a forwarding stub for every interface in this package.\n")
	fmt.Fprintf(buf, "func RegisterBridgeStubs(b *%s.Bridge) error {\n", names.bridge)
	for _, def := range stubs {
		fmt.Fprintf(buf, "if err := %[1]s.Register(b, func(inv %[1]s.Invoker) %[2]s { return %[3]s{inv: inv} }); err != nil {\nreturn err\n}\n",
			names.bridge, def.name, def.stub)
	}
	buf.WriteString("return nil\n}\n\n")
}

func writeRegisterTypes(buf *bytes.Buffer, stubs []stubDef, enums []enumDef, names pkgNames) {
	buf.WriteString("// RegisterRealmTypes declares this package's interfaces and enums to r.\n")
	fmt.Fprintf(buf, "func RegisterRealmTypes(r *%s.Realm) error {\n", names.realm)
	if len(stubs) > 0 {
		buf.WriteString("if err := r.Register(\n")
		for _, def := range stubs {
			fmt.Fprintf(buf, "%s.TypeFor[%s](),\n", names.reflect, def.name)
		}
		buf.WriteString("); err != nil {\nreturn err\n}\n")
	}
	for _, enum := range enums {
		fmt.Fprintf(buf, "if err := r.RegisterEnum(%s); err != nil {\nreturn err\n}\n", strings.Join(enum.constants, ", "))
	}
	buf.WriteString("return nil\n}\n")
}

func isError(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// importSet tracks the packages generated code refers to, aliasing on name
// clashes.
type importSet struct {
	self   *types.Package
	byPath map[string]string
	byName map[string]string
}

func newImportSet(self *types.Package) *importSet {
	return &importSet{self: self, byPath: map[string]string{}, byName: map[string]string{}}
}

func (s *importSet) add(path, name string) string {
	if existing, ok := s.byPath[path]; ok {
		return existing
	}
	alias := name
	for i := 2; s.byName[alias] != "" || alias == s.self.Name(); i++ {
		alias = name + strconv.Itoa(i)
	}
	s.byPath[path] = alias
	s.byName[alias] = path
	return alias
}

func (s *importSet) qualifier(p *types.Package) string {
	if p == s.self || p.Path() == s.self.Path() {
		return ""
	}
	return s.add(p.Path(), p.Name())
}

func (s *importSet) uses(name string) bool {
	return s.byName[name] != ""
}

func (s *importSet) write(buf *bytes.Buffer) {
	var std, other []string
	for path := range s.byPath {
		if first, _, _ := strings.Cut(path, "/"); strings.Contains(first, ".") {
			other = append(other, path)
		} else {
			std = append(std, path)
		}
	}
	sort.Strings(std)
	sort.Strings(other)
	buf.WriteString("import (\n")
	for i, group := range [][]string{std, other} {
		if i > 0 && len(std) > 0 && len(other) > 0 {
			buf.WriteString("\n")
		}
		for _, path := range group {
			if alias := s.byPath[path]; alias != defaultName(path) {
				fmt.Fprintf(buf, "%s %q\n", alias, path)
				continue
			}
			fmt.Fprintf(buf, "%q\n", path)
		}
	}
	buf.WriteString(")\n\n")
}

func defaultName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
