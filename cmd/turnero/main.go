package main

import "github.com/cirogiorgini/turnero-client/cmd"

func main() {
	cmd.Execute()
}
