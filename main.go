package main

import "github.com/chriserin/cukelive/cmd"

func main() {
	cmd.Execute()
}
