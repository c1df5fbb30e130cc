package main

import "github.com/credshell/credshell/cmd"

func main() {
	cmd.Execute()
}
