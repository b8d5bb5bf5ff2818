package main

import "github.com/mouse-blink/gild/cmd"

func main() {
	cmd.Execute()
}
