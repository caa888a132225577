package main

import "fontdb/cmd"

func main() {
	cmd.Execute()
}
