package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"minicc/pkg/compiler"
	"minicc/pkg/cpu"
)

// readProgram collects lines until a line holding only "." or EOF.
// It reports io.EOF once nothing is left to compile.
func readProgram(sc *bufio.Scanner) (string, error) {
	var sb strings.Builder
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "." {
			return sb.String(), nil
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	if sb.Len() == 0 {
		return "", io.EOF
	}
	return sb.String(), nil
}

// session compiles and runs every program read from in.
func session(in io.Reader, out, diag io.Writer, opts compiler.Options, trace bool) error {
	sc := bufio.NewScanner(in)
	opts.Diag = diag
	for {
		fmt.Fprint(out, "> ")
		src, err := readProgram(sc)
		if err == io.EOF {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(src) == "" {
			continue
		}

		res, err := compiler.Run(src, opts)
		if err != nil {
			continue
		}
		fmt.Fprintln(out, res.Assembly)

		vm := cpu.NewCPU()
		if trace {
			vm.Trace = out
		}
		vm.Load(res.Optimized)
		result, err := vm.Run()
		if err != nil {
			fmt.Fprintf(diag, "run error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "=> %d\n", result)
	}
}

func main() {
	skip := flag.Bool("skip-unknown", false, "drop unrecognized characters instead of failing")
	trace := flag.Bool("trace", false, "print each TAC instruction as it executes")
	flag.Parse()

	log.SetFlags(0)
	if err := session(os.Stdin, os.Stdout, os.Stderr, compiler.Options{SkipUnrecognized: *skip}, *trace); err != nil {
		log.Fatalf("console: %v", err)
	}
}
