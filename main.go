package main

import "github.com/natepiano/brp-mutate/cmd"

func main() {
	cmd.Execute()
}
