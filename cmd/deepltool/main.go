// Command deepltool serves and runs the DeepL translator tool.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ZaguanLabs/deepltool/internal/cli"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	return cli.Execute(context.Background(), args, stdout, stderr)
}
