package main

import "github.com/theirongolddev/budgetring/cmd"

func main() {
	cmd.Execute()
}
