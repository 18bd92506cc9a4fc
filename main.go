package main

import "github.com/creatorlens/backend/cmd"

func main() {
	cmd.Execute()
}
