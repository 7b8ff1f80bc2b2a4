package main

import "github.com/lunagic/quill/internal/commands"

func main() {
	commands.Execute()
}
