package main

import "github.com/danuprasetya/hr-management/cmd"

func main() {
	cmd.Execute()
}
