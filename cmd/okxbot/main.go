package main

import "github.com/Dayto852/okx-pro-bot/internal/cli"

func main() {
	cli.Execute()
}
