package main

import (
	"fmt"
	"os"

	weburl "github.com/Nextmidi/weburl"
)

func main() {
	if err := weburl.Main(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
