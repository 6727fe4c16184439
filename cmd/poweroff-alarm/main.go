package main

import "github.com/oshokin/poweroff-alarm/cmd/poweroff-alarm/cmd"

func main() {
	cmd.Execute()
}
