package main

import "github.com/user/apisentry/cmd"

func main() {
	cmd.Execute()
}
