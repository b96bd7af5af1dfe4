// Debug tool: run the odds extraction rules over raw text or one screenshot
// and print what validated. Usage:
//
//	parse_text board.txt
//	parse_text -image board.png
//	echo "Real Madrid 2.10 Empate 3.40 Barcelona 3.20" | parse_text -
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"oddscap/pkg/ocr"
	"oddscap/pkg/odds"
)

func main() {
	var fromImage bool
	flag.BoolVar(&fromImage, "image", false, "treat the input file as an image and OCR it first")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: parse_text [-image] <path|->")
		os.Exit(2)
	}

	var text string
	arg := flag.Arg(0)
	if fromImage {
		data, err := os.ReadFile(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read:", err)
			os.Exit(1)
		}
		frags := ocr.RecognizeOrPlaceholder(context.Background(), ocr.NewTesseract(""), data)
		text = ocr.JoinFragments(frags, 0)
		fmt.Println("--- recognized text ---")
		fmt.Println(text)
	} else if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read stdin:", err)
			os.Exit(1)
		}
		text = string(data)
	} else {
		data, err := os.ReadFile(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read:", err)
			os.Exit(1)
		}
		text = string(data)
	}

	rec := odds.ParseText(text)
	fmt.Println("--- extracted ---")
	fmt.Println(odds.Detailed("debug", rec))
	out, _ := json.MarshalIndent(rec, "", "  ")
	fmt.Println("--- json ---")
	fmt.Println(string(out))
}
