package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/theirongolddev/milo/cmd"
)

func main() {
	cmd.Execute()
}
