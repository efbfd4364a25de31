/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package main

import (
	"github.com/sbridger/reckon/cmd"
)

func main() {
	cmd.Execute()
}
