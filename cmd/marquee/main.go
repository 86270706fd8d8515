package main

import "github.com/k1LoW/marquee/cmd"

func main() {
	cmd.Execute()
}
