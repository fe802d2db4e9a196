package main

import (
	"os"

	augmemcmder "github.com/augmentcode/augmem/cmd/augmem"
)

func main() {
	if err := augmemcmder.NewAugmemCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
