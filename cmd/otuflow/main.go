package main

import "github.com/otuflow/otuflow/internal/cmd"

func main() {
	cmd.Execute()
}
