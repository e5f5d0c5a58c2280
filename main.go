package main

import "github.com/sutt/usa-spending/cmd"

func main() {
	cmd.Execute()
}
