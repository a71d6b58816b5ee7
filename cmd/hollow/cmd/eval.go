package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/hollow/internal/eval"
	"github.com/cwbudde/hollow/internal/obj"
	"github.com/cwbudde/hollow/internal/trace"
	"github.com/cwbudde/hollow/pkg/hollow"
)

var (
	flagSearchPaths []string
	flagTLAStr      []string
	flagTLACode     []string
	flagMaxStack    int
	flagIndent      int
	flagOutputFile  string
	flagOutputMode  string
)

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate a Hollow file and print its manifested output",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	flags := evalCmd.Flags()
	flags.StringSliceVarP(&flagSearchPaths, "jpath", "J", nil, "additional library search directory")
	flags.StringArrayVar(&flagTLAStr, "tla-str", nil, "top-level string argument, name=value")
	flags.StringArrayVar(&flagTLACode, "tla-code", nil, "top-level code argument, name=expr")
	flags.IntVar(&flagMaxStack, "max-stack", 500, "maximum evaluation stack depth")
	flags.IntVar(&flagIndent, "indent", 3, "JSON indentation width")
	flags.StringVarP(&flagOutputFile, "output", "o", "", "write output to file instead of stdout")
	flags.StringVarP(&flagOutputMode, "output-mode", "m", "json", "one of: json, yaml, stream, multi")
}

func runEval(c *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	engine := hollow.New(
		hollow.WithSearchPath(flagSearchPaths...),
		hollow.WithMaxStackDepth(flagMaxStack),
		hollow.WithIndent(flagIndent),
	)

	for _, kv := range flagTLAStr {
		name, val, ok := splitKV(kv)
		if !ok {
			return fmt.Errorf("--tla-str expects name=value, got %q", kv)
		}
		engine.WithTLA(name, obj.Str(val))
	}
	for _, kv := range flagTLACode {
		name, val, ok := splitKV(kv)
		if !ok {
			return fmt.Errorf("--tla-code expects name=expr, got %q", kv)
		}
		v, err := engine.EvaluateSnippet("<tla>", val)
		if err != nil {
			return reportErr(err)
		}
		engine.WithTLA(name, v)
	}

	root, err := engine.EvaluateSnippet(path, string(data))
	if err != nil {
		return reportErr(err)
	}

	var out string
	switch flagOutputMode {
	case "json":
		out, err = engine.Manifest(root)
	case "yaml":
		out, err = engine.ManifestYAML(root)
	case "stream":
		out, err = engine.ManifestStream(root)
	case "multi":
		docs, merr := engine.ManifestMulti(root)
		if merr != nil {
			return reportErr(merr)
		}
		return writeMulti(docs)
	default:
		return fmt.Errorf("unknown output mode %q", flagOutputMode)
	}
	if err != nil {
		return reportErr(err)
	}
	return writeOutput(out)
}

func splitKV(s string) (string, string, bool) {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

func reportErr(err error) error {
	if ee, ok := err.(*eval.Error); ok {
		return fmt.Errorf("%s", trace.Render(ee))
	}
	return err
}

func writeOutput(s string) error {
	if flagOutputFile == "" {
		fmt.Println(s)
		return nil
	}
	return os.WriteFile(flagOutputFile, []byte(s+"\n"), 0o644)
}

func writeMulti(docs map[string]string) error {
	if flagOutputFile == "" {
		for _, name := range sortedKeys(docs) {
			fmt.Printf("--- %s ---\n%s\n", name, docs[name])
		}
		return nil
	}
	for name, doc := range docs {
		if err := os.WriteFile(flagOutputFile+"/"+name, []byte(doc+"\n"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
