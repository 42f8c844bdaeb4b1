package main

import "github.com/ghostai/ghostscan/cmd/ghostscan"

func main() { ghostscan.Execute() }
