package main

import "github.com/zeekyhq/zeeky/cmd"

func main() {
	cmd.Execute()
}
