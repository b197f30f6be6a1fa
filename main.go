package main

import "github.com/Tiliavir/trivial-progress-tracker/cmd"

func main() {
	cmd.Execute()
}
