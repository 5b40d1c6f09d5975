package main

import (
	"github.com/netspeed-collector/cmd/agent"
)

func main() {
	agent.Execute()
}
