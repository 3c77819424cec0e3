package main

import "skylift/cmd"

func main() {
	cmd.Execute()
}
