package main

import "clubsphere_backend/cmd/server/cmd"

func main() {
	cmd.Execute()
}
