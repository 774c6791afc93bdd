package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	formkit "github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/orchestrator"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
)

func main() {
	source := flag.String("source", "form.json", "descriptor path or URL")
	renderer := flag.String("renderer", "vanilla", "renderer to use (vanilla, tui)")
	output := flag.String("output", "", "output file (stdout if empty)")
	formID := flag.String("form", "", "form id when the source yields several forms")
	isOpenAPI := flag.Bool("openapi", false, "treat the source as an OpenAPI document")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid source: %q", *source)
	}

	registry := render.NewRegistry()
	html, err := vanilla.New()
	if err != nil {
		log.Fatalf("initialise renderer: %v", err)
	}
	registry.MustRegister(html)
	registry.MustRegister(tui.New())

	gen := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithLoader(newLoader()),
	)

	out, err := gen.Generate(ctx, orchestrator.Request{
		Source:   src,
		Renderer: *renderer,
		OpenAPI:  *isOpenAPI,
		FormID:   *formID,
	})
	if err != nil {
		log.Fatalf("generate form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(out))
	}
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}

func newLoader() schema.Loader {
	return formkit.NewLoader(schema.WithHTTPFallback(15 * time.Second))
}
