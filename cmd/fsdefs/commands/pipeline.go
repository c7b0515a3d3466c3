package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/fsdefs/config"
	"github.com/teranos/fsdefs/errors"
	"github.com/teranos/fsdefs/logger"
	"github.com/teranos/fsdefs/schema"
	"github.com/teranos/fsdefs/typegen"
	"github.com/teranos/fsdefs/typegen/diag"
	"github.com/teranos/fsdefs/typegen/fsharp"
	"github.com/teranos/fsdefs/typegen/jsonschema"
	"github.com/teranos/fsdefs/typegen/typescript"
)

// allLanguages is the expansion of --lang all
var allLanguages = []string{"fsharp", "typescript", "jsonschema"}

// parseLanguages normalizes --lang values and their aliases
func parseLanguages(values []string) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(lang string) {
		if !seen[lang] {
			seen[lang] = true
			out = append(out, lang)
		}
	}
	for _, v := range values {
		for _, lang := range strings.Split(v, ",") {
			switch strings.ToLower(strings.TrimSpace(lang)) {
			case "all":
				for _, l := range allLanguages {
					add(l)
				}
			case "fsharp", "fs", "f#":
				add("fsharp")
			case "typescript", "ts":
				add("typescript")
			case "jsonschema", "json", "schema":
				add("jsonschema")
			case "":
			default:
				return nil, errors.WithHint(
					errors.Newf("invalid language: %s", lang),
					"supported: fsharp, typescript, jsonschema, all")
			}
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no target language selected")
	}
	return out, nil
}

func newGenerator(lang string) typegen.Generator {
	switch lang {
	case "typescript":
		return typescript.NewGenerator()
	case "jsonschema":
		return jsonschema.NewGenerator()
	}
	return fsharp.NewGenerator()
}

// runOptions is one generate invocation after flags and config are merged
type runOptions struct {
	Schemas           []string
	Languages         []string
	Types             []string
	OutputDir         string // empty writes to Stdout
	Namespace         string
	VersionConstraint string
	KeepGoing         bool
	FailFast          bool

	Stdout io.Writer
	Stderr io.Writer
}

// outputFile is one generated file, relative to the output directory
type outputFile struct {
	Name    string
	Content string
}

// translated is one schema after translation
type translated struct {
	Path   string
	Doc    *schema.Document
	Result *typegen.Result
}

// translate loads and translates every schema. Diagnostics are printed as
// they are found; they fail the run unless KeepGoing is set.
func translate(opts runOptions) ([]translated, error) {
	if len(opts.Schemas) == 0 {
		return nil, errors.WithHint(errors.New("no schema files given"), "pass one or more .yaml, .json or .toml schema files")
	}
	log := logger.Named("generate")

	var out []translated
	var failed diag.List
	for _, path := range opts.Schemas {
		doc, err := schema.Load(path)
		if err != nil {
			return nil, err
		}
		if err := schema.CheckVersion(doc, opts.VersionConstraint); err != nil {
			return nil, errors.Wrap(err, path)
		}
		if doc.Module == "" {
			doc.Module = opts.Namespace
		}

		ctx := diag.New()
		if opts.FailFast {
			ctx = diag.FailFast()
		}
		session := typegen.NewSession(typegen.Options{ValidateOverride: fsharp.ValidateType})
		res := session.Generate(doc, opts.Types, ctx)

		printDiagnostics(opts.Stderr, res.Diagnostics)
		failed = append(failed, res.Diagnostics...)
		log.Infow("Translated schema",
			logger.FieldFile, path,
			logger.FieldSession, session.ID,
			logger.FieldCount, len(res.Decls))

		out = append(out, translated{Path: path, Doc: doc, Result: res})
	}

	if len(failed) > 0 && !opts.KeepGoing {
		return nil, errors.WithHint(failed, "fix the diagnostics above or pass --keep-going to write partial output")
	}
	return out, nil
}

// render formats every translated schema in every language.
func render(results []translated, languages []string) ([]outputFile, error) {
	var files []outputFile
	owners := map[string]string{}

	for _, lang := range languages {
		gen := newGenerator(lang)
		var exports []typescript.ModuleExport

		for _, t := range results {
			name := gen.FileName(t.Result.Module)
			if prev, ok := owners[name]; ok {
				return nil, errors.Newf("%s and %s both generate %s", prev, t.Path, name)
			}
			owners[name] = t.Path

			content, err := gen.GenerateFile(t.Result)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to generate %s", lang)
			}
			files = append(files, outputFile{Name: name, Content: content})
			exports = append(exports, typescript.ModuleExport{FileName: name, TypeNames: t.Result.Names()})
		}

		if lang == "typescript" && len(results) > 1 {
			files = append(files, outputFile{Name: typescript.IndexFileName, Content: typescript.GenerateIndex(exports)})
		}
	}
	return files, nil
}

// write stores files under dir, or prints them when dir is empty.
func write(files []outputFile, dir string, stdout io.Writer) error {
	log := logger.Named("generate")
	if dir == "" {
		for i, f := range files {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			fmt.Fprint(stdout, f.Content)
		}
		return nil
	}

	if err := os.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", dir)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), config.DefaultFilePermissions); err != nil {
			return errors.Wrapf(err, "failed to write %s", path)
		}
		log.Infow("Wrote file", logger.FieldFile, path)
	}
	return nil
}

// runGenerate is translate, render and write.
func runGenerate(opts runOptions) ([]outputFile, error) {
	results, err := translate(opts)
	if err != nil {
		return nil, err
	}
	files, err := render(results, opts.Languages)
	if err != nil {
		return nil, err
	}
	if err := write(files, opts.OutputDir, opts.Stdout); err != nil {
		return nil, err
	}
	return files, nil
}

func printDiagnostics(w io.Writer, diags diag.List) {
	if len(diags) == 0 {
		return
	}
	for _, d := range diags {
		pterm.Fprintln(w, d.Terminal())
	}
	pterm.Fprintln(w, pterm.Red(fmt.Sprintf("%d diagnostic(s)", len(diags))))
}
