package main

import "github.com/dave-doty/aggie-unterprise/cmd"

func main() {
	cmd.Execute()
}
