package main

import "github.com/OpenTraceLab/xsvfbang/cmd/xsvfbang/cmd"

func main() {
	cmd.Execute()
}
