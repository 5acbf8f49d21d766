package former_test

import (
	"fmt"

	"github.com/avklo/former/scan"
	"github.com/avklo/former/source"
	"github.com/avklo/former/syntax"
)

func Example() {
	input := `
let area = width * height; // comments and whitespace are dropped
let scaled = (area + 1) * 2
`

	tokens, scanErrors := scan.New(syntax.Keywords...).Scan(source.New("demo", []byte(input)))
	for _, e := range scanErrors {
		fmt.Println(e)
	}

	tree, syntaxErrors := syntax.New().Parse("demo", tokens)
	for _, e := range syntaxErrors {
		fmt.Println(e)
	}
	fmt.Println(tree)

	// Output:
	// (sequence (let area (* width height)) (let scaled (* (group (+ area 1)) 2)))
}

func Example_diagnostics() {
	input := "width ) height"

	tokens, _ := scan.New(syntax.Keywords...).Scan(source.New("demo", []byte(input)))
	tree, syntaxErrors := syntax.New().Parse("demo", tokens)
	for _, e := range syntaxErrors {
		fmt.Println(e)
	}
	fmt.Println(tree)

	// Output:
	// unexpected punctuation ")" in demo at line 1 col 7
	// (sequence width height)
}
