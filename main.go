package main

import "github.com/eddmann/strava-cli/internal/cmd"

func main() {
	cmd.Execute()
}
