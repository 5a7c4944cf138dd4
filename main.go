package main

import "github.com/technova/leave-management/cmd"

func main() {
	cmd.Execute()
}
