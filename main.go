package main

import "github.com/Mohsinsiddi/tragcli/cmd"

func main() {
	cmd.Execute()
}
