package main

import "github.com/jackdreilly/jammer/cmd"

func main() {
	cmd.Execute()
}
