package main

import "github.com/myhealthapp/fitlog/cmd/fitlog/commands"

func main() {
	commands.Execute()
}
