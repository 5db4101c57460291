package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/typefence/typefence/pkg/typefence"
)

func usage() {
	prog := os.Args[0]
	fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", prog)
	fmt.Fprintln(os.Stderr, "Validate a JSON value against a declared type.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  -schema <file>   YAML schema with named type declarations")
	fmt.Fprintln(os.Stderr, "  -type <name>     name of the schema type to validate against")
	fmt.Fprintln(os.Stderr, "  -expr <type>     inline type expression instead of -schema/-type")
	fmt.Fprintln(os.Stderr, "  -data <file>     JSON file with the value to validate (- for stdin)")
	fmt.Fprintln(os.Stderr, "  -config <file>   optional typefence.yaml configuration")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintf(os.Stderr, "  %s -schema types.yaml -type Movie -data movie.json\n", prog)
	fmt.Fprintf(os.Stderr, "  %s -expr 'list[int]' -data numbers.json\n", prog)
}

type options struct {
	schemaPath string
	typeName   string
	expr       string
	dataPath   string
	configPath string
}

func parseArgs(args []string) (options, error) {
	var opts options
	i := 0
	next := func(flag string) (string, error) {
		i++
		if i >= len(args) {
			return "", fmt.Errorf("%s requires a value", flag)
		}
		return args[i], nil
	}
	for ; i < len(args); i++ {
		arg := args[i]
		var err error
		switch arg {
		case "-schema", "--schema":
			opts.schemaPath, err = next(arg)
		case "-type", "--type":
			opts.typeName, err = next(arg)
		case "-expr", "--expr":
			opts.expr, err = next(arg)
		case "-data", "--data":
			opts.dataPath, err = next(arg)
		case "-config", "--config":
			opts.configPath, err = next(arg)
		case "-help", "--help", "help":
			usage()
			os.Exit(0)
		default:
			err = fmt.Errorf("unknown option %q", arg)
		}
		if err != nil {
			return options{}, err
		}
	}

	if opts.expr == "" && (opts.schemaPath == "" || opts.typeName == "") {
		return options{}, fmt.Errorf("either -expr or both -schema and -type are required")
	}
	if opts.expr != "" && opts.typeName != "" {
		return options{}, fmt.Errorf("-expr and -type are mutually exclusive")
	}
	if opts.dataPath == "" {
		return options{}, fmt.Errorf("-data is required")
	}
	return opts, nil
}

// readValue decodes the JSON input. Numbers arrive as json.Number and
// are normalized afterwards so integral values check as ints.
func readValue(path string) (any, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return normalize(value), nil
}

// normalize rewrites decoded JSON into checkable shapes: json.Number
// becomes int when integral and float64 otherwise, containers recurse.
func normalize(value any) any {
	switch v := value.(type) {
	case json.Number:
		if !strings.ContainsAny(v.String(), ".eE") {
			if n, err := v.Int64(); err == nil {
				return int(n)
			}
		}
		f, _ := v.Float64()
		return f
	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v
	case map[string]any:
		for k, item := range v {
			v[k] = normalize(item)
		}
		return v
	}
	return value
}

func run(opts options) error {
	checkOpts := []typefence.CheckOption{}

	if opts.configPath != "" {
		cfg, err := typefence.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		checkOpts = append(checkOpts, typefence.WithConfig(cfg))
	}

	var desc *typefence.Descriptor
	if opts.schemaPath != "" {
		env, err := typefence.LoadSchema(opts.schemaPath)
		if err != nil {
			return err
		}
		checkOpts = append(checkOpts, typefence.WithEnv(env))
		if opts.expr != "" {
			desc, err = typefence.ParseDescriptor(opts.expr)
			if err != nil {
				return err
			}
		} else {
			desc = typefence.RefTo(opts.typeName)
		}
	} else {
		var err error
		desc, err = typefence.ParseDescriptor(opts.expr)
		if err != nil {
			return err
		}
	}

	value, err := readValue(opts.dataPath)
	if err != nil {
		return err
	}

	if err := typefence.Check(value, desc, checkOpts...); err != nil {
		return fmt.Errorf("value %s", err)
	}
	fmt.Println("ok")
	return nil
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		usage()
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
