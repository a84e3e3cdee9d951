// Command cfnschema converts a model file into CloudFormation-style
// resource schema documents, one per resource reachable from the
// configured service, written to stdout (or -out) as pretty-printed JSON.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goccyjson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/kstich/cfnschema"
	"github.com/kstich/cfnschema/model"
)

func main() {
	modelPath := flag.String("model", "", "path to a model file (.json or .yaml)")
	serviceName := flag.String("service", "", "shape name of the service to convert")
	org := flag.String("org", "", "organization name for generated type names")
	svcName := flag.String("service-name", "", "service name for generated type names (defaults to the service shape's name)")
	outPath := flag.String("out", "", "write output here instead of stdout")
	blobFormat := flag.String("blob-format", "", "default JSON Schema format for blob properties")
	disableCapitalized := flag.Bool("disable-capitalized-properties", false, "keep property names exactly as modeled")
	disableDeprecated := flag.Bool("disable-deprecated-properties", false, "omit deprecatedProperties entirely")
	flag.Parse()

	if *modelPath == "" || *serviceName == "" || *org == "" {
		fmt.Fprintln(os.Stderr, "cfnschema: -model, -service, and -org are required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*modelPath, *serviceName, *org, *svcName, *outPath, *blobFormat, *disableCapitalized, *disableDeprecated); err != nil {
		fmt.Fprintf(os.Stderr, "cfnschema: %v\n", err)
		os.Exit(1)
	}
}

func run(modelPath, serviceName, org, svcName, outPath, blobFormat string, disableCapitalized, disableDeprecated bool) error {
	raw, err := loadRawModel(modelPath)
	if err != nil {
		return err
	}

	m, err := BuildModel(raw)
	if err != nil {
		return err
	}

	cfg := cfnschema.Config{
		Service:                              model.NewShapeID(raw.Namespace, serviceName),
		OrganizationName:                     org,
		ServiceName:                          svcName,
		DefaultBlobFormat:                    blobFormat,
		DisableCapitalizedProperties:         disableCapitalized,
		DisableDeprecatedPropertyGeneration:  disableDeprecated,
	}

	results, err := cfnschema.NewConverter(cfg).Convert(m)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	for _, r := range results {
		encoded, err := goccyjson.MarshalIndent(r.Node, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", r.TypeName, err)
		}
		fmt.Fprintf(out, "%s\n", encoded)
	}
	return nil
}

func loadRawModel(path string) (*RawModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw := &RawModel{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, raw); err != nil {
			return nil, fmt.Errorf("parsing yaml model: %w", err)
		}
	default:
		if err := goccyjson.Unmarshal(data, raw); err != nil {
			return nil, fmt.Errorf("parsing json model: %w", err)
		}
	}
	return raw, nil
}
