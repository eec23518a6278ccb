// Package main runs the commentlint CLI.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// finding is one missing doc comment.
type finding struct {
	pos token.Position
	msg string
}

// lintConfig is the shape of .commentlint.yaml.
type lintConfig struct {
	MaxIssues    int      `yaml:"max-issues"`
	ExcludeDirs  []string `yaml:"exclude-dirs"`
	ExcludeFiles []string `yaml:"exclude-files"`
	// ExportedTypes also requires doc comments on exported type declarations.
	ExportedTypes bool `yaml:"exported-types"`
}

// rules is a compiled lintConfig.
type rules struct {
	dirs          []string
	files         []*regexp.Regexp
	exportedTypes bool
}

// main is the entrypoint for the comment linter CLI.
func main() {
	cfgPath := flag.String("config", ".commentlint.yaml", "config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [dirs]\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "Reports functions without a doc comment. Defaults to the current directory.\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	roots := flag.Args()
	if len(roots) == 0 {
		roots = []string{"."}
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fail(err)
	}
	r, err := compileRules(cfg)
	if err != nil {
		fail(err)
	}

	var findings []finding
	for _, root := range roots {
		got, err := lintTree(root, r)
		if err != nil {
			fail(err)
		}
		findings = append(findings, got...)
	}
	os.Exit(report(os.Stderr, findings, cfg.MaxIssues))
}

// fail prints err and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "commentlint: %v\n", err)
	os.Exit(1)
}

// loadConfig reads path. A missing file yields the zero config.
func loadConfig(path string) (lintConfig, error) {
	var cfg lintConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// compileRules normalises directory prefixes and compiles file patterns.
func compileRules(cfg lintConfig) (rules, error) {
	r := rules{exportedTypes: cfg.ExportedTypes}
	for _, d := range cfg.ExcludeDirs {
		d = strings.TrimSpace(strings.TrimPrefix(d, "./"))
		if d != "" {
			r.dirs = append(r.dirs, strings.TrimSuffix(filepath.ToSlash(d), "/"))
		}
	}
	for _, p := range cfg.ExcludeFiles {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		rx, err := regexp.Compile(p)
		if err != nil {
			return rules{}, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		r.files = append(r.files, rx)
	}
	return r, nil
}

// excluded reports whether the slash-separated path rel is skipped.
func (r rules) excluded(rel string) bool {
	for _, d := range r.dirs {
		if rel == d || strings.HasPrefix(rel, d+"/") {
			return true
		}
	}
	for _, rx := range r.files {
		if rx.MatchString(rel) {
			return true
		}
	}
	return false
}

// lintTree walks root the way the go tool does, skipping testdata, vendor and
// directories starting with "_" or ".".
func lintTree(root string, r rules) ([]finding, error) {
	fset := token.NewFileSet()
	var out []finding
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := filepath.ToSlash(path)
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") || name == "testdata" || name == "vendor") {
				return filepath.SkipDir
			}
			if r.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || r.excluded(rel) {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if isGenerated(src) {
			return nil
		}
		got, err := checkFile(fset, path, src, r.exportedTypes)
		if err != nil {
			return err
		}
		out = append(out, got...)
		return nil
	})
	return out, err
}

// checkFile parses src and returns the declarations missing a doc comment.
func checkFile(fset *token.FileSet, filename string, src []byte, exportedTypes bool) ([]finding, error) {
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	var out []finding
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Body == nil || hasDoc(d.Doc) {
				continue
			}
			out = append(out, finding{pos: fset.Position(d.Pos()), msg: fmt.Sprintf("missing doc comment for function %q", funcName(d))})
		case *ast.GenDecl:
			if !exportedTypes || d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts := spec.(*ast.TypeSpec)
				if !ts.Name.IsExported() || hasDoc(ts.Doc) || (len(d.Specs) == 1 && hasDoc(d.Doc)) {
					continue
				}
				out = append(out, finding{pos: fset.Position(ts.Pos()), msg: fmt.Sprintf("missing doc comment for type %q", ts.Name.Name)})
			}
		}
	}
	return out, nil
}

// hasDoc reports whether g carries non-blank text.
func hasDoc(g *ast.CommentGroup) bool {
	return g != nil && strings.TrimSpace(g.Text()) != ""
}

// funcName qualifies methods with their receiver type.
func funcName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	t := fn.Recv.List[0].Type
	if star, ok := t.(*ast.StarExpr); ok {
		t = star.X
	}
	if idx, ok := t.(*ast.IndexExpr); ok {
		t = idx.X
	}
	if id, ok := t.(*ast.Ident); ok {
		return id.Name + "." + fn.Name.Name
	}
	return fn.Name.Name
}

// isGenerated checks the first lines for the standard generated-code marker.
func isGenerated(src []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(src))
	for i := 0; i < 10 && sc.Scan(); i++ {
		line := sc.Text()
		if strings.Contains(line, "Code generated") || strings.Contains(line, "DO NOT EDIT") {
			return true
		}
	}
	return false
}

// report prints findings sorted by position and returns the exit code.
func report(w io.Writer, findings []finding, limit int) int {
	if len(findings) == 0 {
		return 0
	}
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i].pos, findings[j].pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		return a.Line < b.Line
	})
	shown := findings
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, f := range shown {
		fmt.Fprintf(w, "%s:%d:%d: %s\n", f.pos.Filename, f.pos.Line, f.pos.Column, f.msg)
	}
	if len(shown) < len(findings) {
		fmt.Fprintf(w, "commentlint: %d more issues not shown\n", len(findings)-len(shown))
	}
	return 1
}
