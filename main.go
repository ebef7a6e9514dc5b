package main

import "visitor-pass-console/cmd"

func main() {
	cmd.Execute()
}
