package main

import "github.com/Mohsinsiddi/devmint/cmd"

func main() {
	cmd.Execute()
}
