package main

import "github.com/nexo-finance/nexo/internal/cli"

func main() {
	cli.Execute()
}
