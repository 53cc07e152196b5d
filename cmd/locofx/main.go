package main

import "github.com/cbegin/locofx/cmd/locofx/cmd"

func main() {
	cmd.Execute()
}
