package main

import (
	"github.com/Laisky/exa-search-mcp/cmd"
)

func main() {
	cmd.Execute()
}
