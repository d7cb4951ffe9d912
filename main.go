/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/illodev/technical-test-go/cmd"

func main() {
	cmd.Execute()
}
