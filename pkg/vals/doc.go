package vals

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"runtime"
	"strings"
	"sync"
)

// Documenter wraps the Doc method.
type Documenter interface {
	// Doc returns the documentation of the value.
	Doc() string
}

// Doc returns the documentation of v, or "" if none can be found.
//
// Values implementing Documenter supply their own documentation. For funcs and
// methods, Doc returns the doc comment of their declaration; for values of
// other named types, the doc comment of the type. Both are read from the
// source files recorded in the binary, so Doc only finds them when those files
// are present.
func Doc(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case Documenter:
		return v.Doc()
	case Method:
		return methodDoc(v.recv.Type(), v.name)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func {
		if rv.IsNil() {
			return ""
		}
		return funcDoc(rv.Pointer())
	}
	return typeDoc(rv.Type())
}

func methodDoc(t reflect.Type, name string) string {
	m, ok := t.MethodByName(name)
	if !ok {
		return ""
	}
	file, _ := funcFileLine(m.Func.Pointer())
	if file == "<autogenerated>" && t.Kind() == reflect.Ptr {
		// A method with a value receiver called through a pointer.
		return methodDoc(t.Elem(), name)
	}
	return funcDoc(m.Func.Pointer())
}

func funcFileLine(pc uintptr) (string, int) {
	f := runtime.FuncForPC(pc)
	if f == nil {
		return "", 0
	}
	return f.FileLine(f.Entry())
}

func funcDoc(pc uintptr) string {
	filename, line := funcFileLine(pc)
	fset, file := parseSource(filename)
	if file == nil {
		return ""
	}
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if fset.Position(fn.Pos()).Line <= line && line <= fset.Position(fn.End()).Line {
			return docText(fn.Doc)
		}
	}
	return ""
}

func typeDoc(t reflect.Type) string {
	for t.Kind() == reflect.Ptr && t.Name() == "" {
		t = t.Elem()
	}
	if t.Name() == "" || t.PkgPath() == "" {
		return ""
	}
	// The declaration of the type is found through the source file of one
	// of its methods.
	pt := reflect.PtrTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		filename, _ := funcFileLine(m.Func.Pointer())
		if filename == "<autogenerated>" {
			vm, ok := t.MethodByName(m.Name)
			if !ok {
				continue
			}
			filename, _ = funcFileLine(vm.Func.Pointer())
		}
		if doc, ok := typeDocIn(filename, t.Name()); ok {
			return doc
		}
	}
	return ""
}

func typeDocIn(filename, name string) (string, bool) {
	_, file := parseSource(filename)
	if file == nil {
		return "", false
	}
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts := spec.(*ast.TypeSpec)
			if ts.Name.Name != name {
				continue
			}
			if ts.Doc != nil {
				return docText(ts.Doc), true
			}
			return docText(gen.Doc), true
		}
	}
	return "", false
}

func docText(g *ast.CommentGroup) string {
	return strings.TrimSpace(g.Text())
}

var (
	sourceMutex sync.Mutex
	sourceFset  = token.NewFileSet()
	sourceFiles = map[string]*ast.File{}
)

// Parses a source file, caching the result. Files that cannot be read are
// cached as nil.
func parseSource(filename string) (*token.FileSet, *ast.File) {
	sourceMutex.Lock()
	defer sourceMutex.Unlock()
	if file, ok := sourceFiles[filename]; ok {
		return sourceFset, file
	}
	var file *ast.File
	if filename != "" && filename != "<autogenerated>" {
		file, _ = parser.ParseFile(sourceFset, filename, nil, parser.ParseComments)
	}
	sourceFiles[filename] = file
	return sourceFset, file
}
