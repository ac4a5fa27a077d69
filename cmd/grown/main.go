// Command grown はGrown.のランディングページとウェイトリストAPIを提供する。
//
// 使い方:
//
//	grown [serve|migrate|healthcheck]
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/grown/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "grown: %v\n", err)
		os.Exit(1)
	}
}
