package main

import "github.com/qshing/dbinit/cmd"

func main() {
	cmd.Run()
}
