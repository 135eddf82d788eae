package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cognicore/geoaudit/pkg/geoaudit/schema"
)

func main() {
	var (
		kind = flag.String("type", "", "Schema type: "+strings.Join(schema.Kinds, ", "))
		in   = flag.String("in", "-", "YAML input file (- for stdin)")
		tag  = flag.Bool("tag", false, "Wrap the JSON-LD in a <script> element")
	)
	flag.Parse()

	if *kind == "" {
		log.Fatal("--type required")
	}

	if err := run(*kind, *in, *tag, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("schema-gen: %v", err)
	}
}

func run(kind, in string, tag bool, stdin io.Reader, stdout io.Writer) error {
	var (
		data []byte
		err  error
	)
	if in == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(in)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	v, err := schema.Build(strings.ToLower(kind), data)
	if err != nil {
		return err
	}

	var out string
	if tag {
		out, err = schema.ScriptTag(v)
	} else {
		var raw []byte
		raw, err = schema.Marshal(v)
		out = string(raw)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}
