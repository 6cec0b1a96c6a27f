//go:build !js

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"minicc/pkg/asm"
	"minicc/pkg/compiler"
	"minicc/pkg/cpu"
	"minicc/pkg/utils"
)

func main() {
	inPath := flag.String("in", "", "input C source file path")
	outPath := flag.String("out", "", "output listing path (default: input with .asm extension)")
	runProgram := flag.Bool("run", false, "execute the optimized TAC and print main's result")
	skipUnknown := flag.Bool("skip-unknown", false, "drop unrecognized characters instead of failing")
	verify := flag.Bool("verify", false, "check the generated listing before writing it")
	jobs := flag.Int("jobs", 0, "concurrent compilations for batch mode (default: GOMAXPROCS)")
	flag.Parse()

	opts := compiler.Options{
		SkipUnrecognized: *skipUnknown,
		Diag:             os.Stderr,
		Jobs:             *jobs,
	}

	if flag.NArg() > 0 {
		if *inPath != "" || *outPath != "" {
			fmt.Fprintln(os.Stderr, "use either -in or positional files, not both")
			os.Exit(2)
		}
		opts.Diag = nil
		if err := compileBatch(flag.Args(), opts, *verify, *runProgram); err != nil {
			fmt.Fprintf(os.Stderr, "compilation failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in <file.c> or one or more source files")
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input file %q: %v\n", *inPath, err)
		os.Exit(1)
	}

	res, err := compiler.Run(string(source), opts)
	if err != nil {
		os.Exit(1)
	}

	output := *outPath
	if output == "" {
		output = defaultOutputPath(*inPath)
	}
	if err := emit(output, res, *verify); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("compiled %d instructions -> %s\n", len(res.Optimized), output)

	if *runProgram {
		if err := runResult(*inPath, res); err != nil {
			fmt.Fprintf(os.Stderr, "run failed for %q: %v\n", *inPath, err)
			os.Exit(1)
		}
	}
}

func compileBatch(paths []string, opts compiler.Options, verify, run bool) error {
	units := make([]compiler.Unit, len(paths))
	for i, p := range paths {
		fullPath, _, err := utils.GetPathInfo(p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read input file %q: %w", p, err)
		}
		units[i] = compiler.Unit{Name: p, Source: string(data)}
	}

	results, err := compiler.CompileAll(context.Background(), units, opts)
	if err != nil {
		return err
	}

	for i, res := range results {
		output := defaultOutputPath(units[i].Name)
		if err := emit(output, res, verify); err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", units[i].Name, output)
		if run {
			if err := runResult(units[i].Name, res); err != nil {
				return fmt.Errorf("%s: %w", units[i].Name, err)
			}
		}
	}
	return nil
}

func emit(path string, res *compiler.Result, verify bool) error {
	if verify {
		if _, err := asm.Check(res.Assembly); err != nil {
			return fmt.Errorf("listing verification failed: %w", err)
		}
	}
	if err := writeListing(path, res.Assembly); err != nil {
		return fmt.Errorf("failed to write listing %q: %w", path, err)
	}
	return nil
}

func defaultOutputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	if ext == "" {
		return inPath + ".asm"
	}
	return strings.TrimSuffix(inPath, ext) + ".asm"
}

func writeListing(path string, listing string) error {
	return os.WriteFile(path, []byte(listing+"\n"), 0o644)
}

func runResult(name string, res *compiler.Result) error {
	vm := cpu.NewCPU()
	vm.Load(res.Optimized)
	result, err := vm.Run()
	if err != nil {
		return err
	}
	fmt.Printf("run complete (%s): result=%d steps=%d\n", name, result, vm.Steps)
	return nil
}
