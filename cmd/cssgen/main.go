// Command cssgen compiles the declarative CSS property schema into
// generated parser, style builder, and style extractor sources.
package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/yamp-project/WebKit/codegen"
	"github.com/yamp-project/WebKit/registry"
)

var (
	app = kingpin.New("cssgen", "CSS property grammar compiler.")

	propertiesFile = app.Flag("properties", "Property schema document.").Short('p').Required().ExistingFile()
	defines        = app.Flag("defines", "Space-separated set of active compile-time defines.").String()
	outputDir      = app.Flag("output-dir", "Directory for generated sources.").Short('o').Default(".").ExistingDir()
	verbose        = app.Flag("verbose", "Trace schema loading and generation.").Short('v').Bool()
	dumpUnused     = app.Flag("dump-unused-grammars", "List shared grammar rules no property references.").Bool()
	validateUnused = app.Flag("validate-unused-grammars", "Fail when an unused shared rule contains unresolved references.").Bool()
)

var traceKeys = []string{
	"cssgen.bnf",
	"cssgen.term",
	"cssgen.registry",
	"cssgen.codegen",
}

func main() {
	app.Terminate(func(status int) {
		if status != 0 {
			os.Exit(2)
		}
		os.Exit(0)
	})
	kingpin.MustParse(app.Parse(os.Args[1:]))

	level := tracing.LevelError
	if *verbose {
		level = tracing.LevelDebug
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}

	ctx, e := registry.Load(*propertiesFile, *defines)
	if e != nil {
		fail(e)
	}

	if *dumpUnused {
		for _, name := range ctx.UnusedRules() {
			fmt.Println(name)
		}
	}
	if *validateUnused {
		if e = ctx.ValidateUnusedRules(); e != nil {
			fail(e)
		}
	}

	if e = codegen.GenerateAll(ctx, *outputDir); e != nil {
		fail(e)
	}
}

func fail(e error) {
	fmt.Fprintln(os.Stderr, e.Error())
	os.Exit(3)
}
