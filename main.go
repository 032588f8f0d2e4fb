package main

import "github.com/slumbersage/gjirafa50/cmd"

func main() {
	cmd.Execute()
}
