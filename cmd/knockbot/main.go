package main

import "github.com/knockbot/knockbot/internal/cli"

func main() {
	cli.Execute()
}
