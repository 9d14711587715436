//go:build ignore

package main

import (
	"fmt"

	"github.com/zhubert/codecheck/internal/clipboard"
)

func main() {
	if err := clipboard.Init(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println("Testing clipboard read...")
	text, err := clipboard.ReadText()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if text == "" {
		fmt.Println("No text in clipboard")
		return
	}
	fmt.Printf("Text found: %d bytes\n", len(text))
}
