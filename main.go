package main

import "orion_service/internal/cli"

func main() {
	cli.Execute()
}
