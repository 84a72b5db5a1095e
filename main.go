package main

import "github.com/josephlewis42/bangsh/cmd"

func main() {
	cmd.Execute()
}
