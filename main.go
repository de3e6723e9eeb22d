package main

import "github.com/KaramelBytes/calview-cli/cmd"

func main() {
	cmd.Execute()
}
