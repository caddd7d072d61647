// Package banner prints kiba's startup banner, carried over verbatim from
// the original CLI's ASCII art (src/bin/kiba-cli.rs in original_source)
// and extended to both the server and CLI entrypoints per SPEC_FULL §11.5.
package banner

import "fmt"

const art = `
██╗  ██╗██╗██████╗  █████╗
██║ ██╔╝██║██╔══██╗██╔══██╗
█████╔╝ ██║██████╔╝███████║
██╔═██╗ ██║██╔══██╗██╔══██║
██║  ██╗██║██████╔╝██║  ██║
╚═╝  ╚═╝╚═╝╚═════╝ ╚═╝  ╚═╝
`

// Version is kiba's reported release string.
const Version = "0.1 (unstable)"

// Print writes the banner and a one-line subtitle to stdout.
func Print(subtitle string) {
	fmt.Println(art)
	fmt.Printf("Kiba %s\n", Version)
	fmt.Println("===========================")
	if subtitle != "" {
		fmt.Println(subtitle)
	}
}
