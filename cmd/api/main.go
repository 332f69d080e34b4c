package main

import (
	_ "github.com/joho/godotenv/autoload"

	"dbexplorer/cmd/api/cmd"
)

func main() {
	cmd.Execute()
}
