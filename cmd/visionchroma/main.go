// VisionChroma - accessibility and colour-science checks for web pages
//
// VisionChroma scores a page document for WCAG contrast, colour vision
// deficiency, readability, heading structure and layout attention.
package main

import (
	"os"

	"github.com/marianadeem755/VisionChroma-pro/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
