package main

import (
	"fmt"
	"os"
	"strings"

	"minicc/pkg/compiler"
	"minicc/pkg/tac"
	"minicc/pkg/utils"
)

const testSource = `int main() {
    int a = 2 + 3;
    return a;
}
`

func main() {
	src := testSource
	if len(os.Args) > 1 {
		var err error
		src, err = utils.ReadSource(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, "read error:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Source:\n%s\n", src)

	res, err := compiler.Run(src, compiler.Options{Diag: os.Stderr})
	if err != nil {
		os.Exit(1)
	}

	fmt.Printf("Tokens (%d)\n", len(res.Tokens))
	for _, tok := range res.Tokens {
		fmt.Println(" ", tok)
	}
	fmt.Println()

	fmt.Println("AST")
	fmt.Println(" ", res.AST)
	fmt.Println()

	fmt.Print(res.Symbols)
	fmt.Println()

	fmt.Println("TAC")
	fmt.Println(indent(tac.Format(res.TAC)))
	fmt.Println()

	fmt.Println("Optimized TAC")
	fmt.Println(indent(tac.Format(res.Optimized)))
	fmt.Println()

	fmt.Println("Generated Assembly")
	fmt.Println(res.Assembly)
}

func indent(lines []string) string {
	if len(lines) == 0 {
		return "  (none)"
	}
	return "  " + strings.Join(lines, "\n  ")
}
