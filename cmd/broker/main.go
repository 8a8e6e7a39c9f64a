// Package main - broker CLI
//
// 사용법:
//
//	go run ./cmd/broker serve
//	go run ./cmd/broker migrate up
package main

import (
	"os"

	"github.com/wonny/mandacaru-broker/cmd/broker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
