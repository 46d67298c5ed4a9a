package main

import "github.com/KaramelBytes/ratelens-cli/cmd"

func main() {
	cmd.Execute()
}
