package main

import "github.com/dataqa-labs/tablecheck/cmd"

func main() {
	cmd.Execute()
}
