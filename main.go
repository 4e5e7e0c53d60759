package main

import "github.com/klytics/coursegrid/cmd"

func main() {
	cmd.Execute()
}
