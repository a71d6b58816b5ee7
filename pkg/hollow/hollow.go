// Package hollow is the embedder-facing API for the Hollow configuration
// language: parse and evaluate snippets or files, register native
// callbacks, apply top-level arguments, and manifest the result as
// JSON, YAML, a document stream, or a multi-file map.
package hollow

import (
	"github.com/cwbudde/hollow/internal/ast"
	"github.com/cwbudde/hollow/internal/eval"
	"github.com/cwbudde/hollow/internal/manifest"
	"github.com/cwbudde/hollow/internal/obj"
	"github.com/cwbudde/hollow/internal/parser"
	"github.com/cwbudde/hollow/internal/resolver"
	"github.com/cwbudde/hollow/internal/stdlib"
)

// Engine is one Hollow evaluation context: a shared interner, evaluator,
// import resolver and accumulated top-level arguments. Not safe for
// concurrent use, matching the single-threaded evaluation discipline
// the underlying Evaluator requires.
type Engine struct {
	interner *obj.Interner
	ev       *eval.Evaluator
	resolver *resolver.FS
	baseCtx  *obj.Context
	tlas     []eval.TLA
	indent   int
}

// engineConfig accumulates Option settings before the Evaluator (and
// the stdlib it hosts natives for) is built, so every Option is in
// effect from the Engine's first evaluation rather than racing a later
// rebuild of the Evaluator out from under already-installed natives.
type engineConfig struct {
	searchPath    []string
	maxStackDepth int
	indent        int
}

// Option configures a new Engine.
type Option func(*engineConfig)

// WithSearchPath adds library search directories consulted when an
// import isn't found relative to its importing file.
func WithSearchPath(dirs ...string) Option {
	return func(c *engineConfig) { c.searchPath = append(c.searchPath, dirs...) }
}

// WithMaxStackDepth overrides the default call/import stack depth limit.
func WithMaxStackDepth(n int) Option {
	return func(c *engineConfig) { c.maxStackDepth = n }
}

// WithIndent sets the JSON/stream indentation width used by Manifest*.
func WithIndent(n int) Option {
	return func(c *engineConfig) { c.indent = n }
}

// New builds an Engine with the default std library installed.
func New(opts ...Option) *Engine {
	cfg := &engineConfig{indent: 3}
	for _, opt := range opts {
		opt(cfg)
	}

	interner := obj.NewInterner()
	res := resolver.New(cfg.searchPath...)
	ev := eval.New(interner, eval.Options{MaxStackDepth: cfg.maxStackDepth, Resolver: res})
	baseCtx := stdlib.Install(ev)
	ev.SetBaseContext(baseCtx)
	return &Engine{interner: interner, ev: ev, resolver: res, baseCtx: baseCtx, indent: cfg.indent}
}

// RegisterNative exposes a host Go function to Hollow code as
// std.native(name), which returns it as a callable function value.
func (e *Engine) RegisterNative(name string, params []string, fn func(args []obj.Value) (obj.Value, error)) {
	e.ev.RegisterNative(name, params, fn)
}

// WithTLA queues a top-level argument bound by name when the evaluated
// document's root value is a function (spec §4.7). Returns the Engine
// for chaining.
func (e *Engine) WithTLA(name string, value obj.Value) *Engine {
	e.tlas = append(e.tlas, eval.TLA{Name: name, Value: value})
	return e
}

// EvaluateSnippet parses and evaluates code as a standalone document
// named filename (used only for diagnostics and relative imports),
// applying any queued top-level arguments.
func (e *Engine) EvaluateSnippet(filename, code string) (obj.Value, error) {
	src := &ast.Source{Name: filename, Code: code}
	root, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	v, err := e.ev.Eval(root, e.baseCtx)
	if err != nil {
		return nil, err
	}
	return e.ev.ApplyTLA(v, e.tlas)
}

// Import evaluates the file at path exactly as an `import "path"`
// expression inside a document at "<stdin>" would.
func (e *Engine) Import(path string) (obj.Value, error) {
	return e.EvaluateSnippet("<stdin>", "import \""+escapeHollowString(path)+"\"")
}

// ImportStr returns the raw contents of path as a string, exactly as
// `importstr "path"` would.
func (e *Engine) ImportStr(path string) (string, error) {
	v, err := e.EvaluateSnippet("<stdin>", "importstr \""+escapeHollowString(path)+"\"")
	if err != nil {
		return "", err
	}
	s, _ := v.(obj.Str)
	return string(s), nil
}

// ImportBin returns the raw bytes of path as an array of byte values,
// exactly as `importbin "path"` would.
func (e *Engine) ImportBin(path string) (obj.Value, error) {
	return e.EvaluateSnippet("<stdin>", "importbin \""+escapeHollowString(path)+"\"")
}

func escapeHollowString(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}

// Manifest renders v as JSON using the Engine's configured indent.
func (e *Engine) Manifest(v obj.Value) (string, error) {
	return manifest.JSON(e.interner, v, e.indent)
}

// ManifestYAML renders v as YAML.
func (e *Engine) ManifestYAML(v obj.Value) (string, error) {
	return manifest.YAML(e.interner, v)
}

// ManifestStream renders a top-level array as a newline-joined stream
// of JSON documents.
func (e *Engine) ManifestStream(v obj.Value) (string, error) {
	return manifest.Stream(e.interner, v, e.indent)
}

// ManifestMulti renders a top-level object as a map from field name to
// independently rendered JSON document.
func (e *Engine) ManifestMulti(v obj.Value) (map[string]string, error) {
	return manifest.Multi(e.interner, v, e.indent)
}

// Interner exposes the Engine's identifier interner, for embedders that
// need to build obj.Value object literals programmatically (e.g. ext
// vars) with field names matching Hollow's interning.
func (e *Engine) Interner() *obj.Interner { return e.interner }
