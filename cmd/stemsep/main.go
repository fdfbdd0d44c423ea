// SPDX-License-Identifier: EPL-2.0

// Command stemsep splits a song into vocal and instrumental WAV stems.
//
// Usage:
//
//	stemsep separate song.mp3 -o stems/
//	stemsep separate song.wav --zip
//	stemsep formats
//	stemsep config --config stemsep.yaml
package main

import (
	"fmt"
	"os"

	"github.com/ik5/stemsep/cmd/stemsep/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
