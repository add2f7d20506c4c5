package main

import (
	"fmt"
	"os"
)

func main() {
	app := newAppContext()
	if err := newRootCmd(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
