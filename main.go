package main

import "github.com/hukumai/hukumchat/cmd"

func main() {
	cmd.Execute()
}
