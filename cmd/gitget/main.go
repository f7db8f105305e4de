package main

import "gitget/cmd/gitget/cmd"

func main() {
	cmd.Execute()
}
