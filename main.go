package main

import "github.com/fakeyudi/fieldedit/cmd"

func main() {
	cmd.Execute()
}
