// Command jsonpath evaluates a query against a JSON document read from a
// file or stdin, printing matched values (or paths, with --paths) as a
// JSON array. It plays the role the teacher's src/main.go WASM playground
// plays — parse a query, parse a document, execute, report — rebuilt as an
// ordinary terminal program via github.com/urfave/cli/v2 rather than a
// syscall/js bridge, since this dialect has no browser-playground target.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/lucidpath/jsonpath/jsonpath"
)

func main() {
	app := &cli.App{
		Name:      "jsonpath",
		Usage:     "evaluate a JSONPath query against a JSON document",
		ArgsUsage: "<query> [file]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "paths", Usage: "print normalized paths instead of values"},
			&cli.BoolFlag{Name: "nodes", Usage: "print {path, value} pairs"},
			&cli.BoolFlag{Name: "unique", Usage: "remove results with a duplicate path"},
			&cli.BoolFlag{Name: "sort", Usage: "sort results by normalized path"},
			&cli.BoolFlag{Name: "parallel", Usage: "evaluate unions concurrently"},
			&cli.IntFlag{Name: "max-depth", Usage: "bound recursive descent depth", Value: 0},
			&cli.BoolFlag{Name: "verbose", Usage: "enable structured logging to stderr"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "jsonpath:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.Exit("missing query argument", 2)
	}
	query := c.Args().Get(0)

	var input io.Reader = os.Stdin
	if c.Args().Len() > 1 {
		f, err := os.Open(c.Args().Get(1))
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer f.Close()
		input = f
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return cli.Exit(err, 1)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return cli.Exit(fmt.Errorf("parsing document: %w", err), 1)
	}

	p, err := jsonpath.Parse(query)
	if err != nil {
		return cli.Exit(fmt.Errorf("parsing query: %w", err), 1)
	}

	opts := buildOptions(c)

	switch {
	case c.Bool("nodes"):
		matches, err := p.SelectNodes(doc, opts...)
		if err != nil {
			return cli.Exit(err, 1)
		}
		return printJSON(matches)
	case c.Bool("paths"):
		paths, err := p.SelectPaths(doc, opts...)
		if err != nil {
			return cli.Exit(err, 1)
		}
		return printJSON(paths)
	default:
		values, err := p.SelectValues(doc, opts...)
		if err != nil {
			return cli.Exit(err, 1)
		}
		raw := make([]any, len(values))
		for i, v := range values {
			raw[i] = v.Raw()
		}
		return printJSON(raw)
	}
}

func buildOptions(c *cli.Context) []jsonpath.Option {
	var opts []jsonpath.Option
	if n := c.Int("max-depth"); n > 0 {
		opts = append(opts, jsonpath.WithMaxDepth(n))
	}
	if c.Bool("unique") {
		opts = append(opts, jsonpath.WithNoDuplicates())
	}
	if c.Bool("sort") {
		opts = append(opts, jsonpath.WithSort())
	}
	if c.Bool("parallel") {
		opts = append(opts, jsonpath.WithParallelUnion())
	}
	if c.Bool("verbose") {
		log, _ := zap.NewDevelopment()
		opts = append(opts, jsonpath.WithLogger(log))
	}
	return opts
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
