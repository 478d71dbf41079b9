package main

import "github.com/kmellea/moneylens/cmd"

func main() {
	cmd.Execute()
}
