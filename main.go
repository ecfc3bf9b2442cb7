package main

import "github.com/endorses/blockstatd/cmd"

func main() {
	cmd.Execute()
}
