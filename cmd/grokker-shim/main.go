package main

import "github.com/oshokin/grokker-shim/cmd/grokker-shim/cmd"

func main() {
	cmd.Execute()
}
