package main

import (
	"github.com/host-exporter/cmd/agent"
)

func main() {
	agent.Execute()
}
