package main

import "github.com/theirongolddev/habitat/cmd"

func main() {
	cmd.Execute()
}
