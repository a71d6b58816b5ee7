package eval

import (
	"bytes"
	"errors"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/cwbudde/hollow/internal/ast"
	"github.com/cwbudde/hollow/internal/obj"
	"github.com/cwbudde/hollow/internal/parser"
)

type importState uint8

const (
	importNotStarted importState = iota
	importEvaluating
	importDone
	importErrored
)

type importEntry struct {
	state importState
	value obj.Value
	err   error
	bytes []byte // raw bytes, used by importstr/importbin regardless of state
}

// importCache implements the parse-once, evaluate-once memoization and
// cycle detection of spec §4.6: each canonical identity the Resolver
// hands back is looked up exactly once, and a file that (transitively)
// imports itself is rejected rather than looping forever.
type importCache struct {
	entries map[string]*importEntry
}

func newImportCache() *importCache {
	return &importCache{entries: make(map[string]*importEntry)}
}

func (e *Evaluator) evalImport(n *ast.Import, ctx *obj.Context) (obj.Value, error) {
	fromName := "<stdin>"
	if loc := n.Loc(); loc != nil && loc.Source != nil {
		fromName = loc.Source.Name
	}
	if e.resolver == nil {
		return nil, newErr(ImportNotSupported, "no import resolver configured").withTrace(e)
	}
	canonical, err := e.resolver.Resolve(n.Path, fromName)
	if err != nil {
		return nil, newErr(ImportIoError, "failed to resolve import %q: %s", n.Path, err.Error()).withTrace(e)
	}

	entry := e.imports.entries[canonical]
	if entry == nil {
		entry = &importEntry{}
		e.imports.entries[canonical] = entry
	}

	switch n.Kind {
	case ast.ImportAsString:
		if err := e.loadRaw(canonical, entry); err != nil {
			return nil, err
		}
		if err := validateUTF8(entry.bytes); err != nil {
			return nil, newErr(ImportIoError, "%q is not valid UTF-8: %s", canonical, err.Error()).withTrace(e)
		}
		return obj.Str(entry.bytes), nil
	case ast.ImportAsBinary:
		if err := e.loadRaw(canonical, entry); err != nil {
			return nil, err
		}
		elems := make([]*obj.Thunk, len(entry.bytes))
		for i, b := range entry.bytes {
			elems[i] = obj.Resolved(obj.Num(b))
		}
		return &obj.Arr{Elements: elems}, nil
	default:
		return e.loadEval(canonical, entry)
	}
}

// validateUTF8 rejects byte sequences that are not valid UTF-8 by
// round-tripping through the UTF-8 decoder transform, which replaces each
// invalid sequence with U+FFFD: any difference between input and output
// marks invalid input (importstr must see exactly what was in the file,
// spec §4.6).
func validateUTF8(data []byte) error {
	decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), data)
	if err != nil {
		return err
	}
	if !bytes.Equal(decoded, data) {
		return errors.New("invalid UTF-8 sequence")
	}
	return nil
}

func (e *Evaluator) loadRaw(canonical string, entry *importEntry) error {
	if entry.bytes != nil {
		return nil
	}
	data, err := e.resolver.Load(canonical)
	if err != nil {
		return newErr(ImportIoError, "failed to read %q: %s", canonical, err.Error()).withTrace(e)
	}
	entry.bytes = data
	return nil
}

func (e *Evaluator) loadEval(canonical string, entry *importEntry) (obj.Value, error) {
	switch entry.state {
	case importEvaluating:
		return nil, newErr(InfiniteRecursionDetected, "import cycle detected at %q", canonical).withTrace(e)
	case importDone:
		return entry.value, nil
	case importErrored:
		return nil, entry.err
	}

	entry.state = importEvaluating
	data, err := e.resolver.Load(canonical)
	if err != nil {
		entry.state = importErrored
		entry.err = newErr(ImportIoError, "failed to read %q: %s", canonical, err.Error()).withTrace(e)
		return nil, entry.err
	}
	src := &ast.Source{Name: canonical, Code: string(data)}
	root, perr := parser.Parse(src)
	if perr != nil {
		entry.state = importErrored
		if pe, ok := perr.(*parser.Error); ok {
			entry.err = newErr(ImportSyntaxError, "%s: %d:%d: %s", canonical, pe.Pos.Line, pe.Pos.Column, pe.Msg).withTrace(e)
		} else {
			entry.err = newErr(ImportSyntaxError, "%s: %s", canonical, perr.Error()).withTrace(e)
		}
		return nil, entry.err
	}

	leave, overflow := e.stack.enter(StackFrame{Name: "import " + canonical, Loc: root.Loc()})
	defer leave()
	if overflow != nil {
		entry.state = importErrored
		entry.err = overflow
		return nil, overflow
	}

	v, verr := e.Eval(root, e.rootContext())
	if verr != nil {
		entry.state = importErrored
		entry.err = verr
		return nil, verr
	}
	entry.state = importDone
	entry.value = v
	return v, nil
}

// rootContext returns the base Context every imported file starts from.
// Overridden by SetBaseContext once the default context initializer (spec
// §4.9) is wired in by pkg/hollow.
func (e *Evaluator) rootContext() *obj.Context {
	if e.baseContext != nil {
		return e.baseContext
	}
	return obj.NewContext()
}
