package main

import "github.com/miniblog/apiserver/cmd"

func main() {
	cmd.Execute()
}
