package main

import "cafe_backoffice/internal/cli"

func main() {
	cli.Execute()
}
