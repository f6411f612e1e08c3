package main

import "techtree/cmd"

func main() {
	cmd.Execute()
}
