package main

import "github.com/pfrederiksen/sharif-course-watch/internal/cli"

func main() {
	cli.Execute()
}
