package main

import "github.com/vietdv277/devenv/cmd"

func main() {
	cmd.Execute()
}
