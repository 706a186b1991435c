package main

import "github.com/learnhub/institute-console/cmd/console/cmd"

func main() {
	cmd.Execute()
}
