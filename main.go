package main

import "gallery-index/cmd"

func main() {
	cmd.Execute()
}
