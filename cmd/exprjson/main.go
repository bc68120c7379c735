package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/exprjson"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
)

func usageError() error {
	fmt.Fprintln(os.Stderr, "usage: exprjson <expression>")
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintln(os.Stderr, `  exprjson '1 + 2 * 3'`)
	fmt.Fprintln(os.Stderr, `  exprjson 'items.iter().map(|x| x * 2).collect::<Vec<_>>()'`)
	fmt.Fprintln(os.Stderr, `  exprjson 'if x > 0 { x } else { -x }'`)
	os.Exit(1)
	return nil
}

func main() {
	app := &cli.App{
		Name:      "exprjson",
		Usage:     "convert an expression to canonical JSON",
		ArgsUsage: "<expression>",
		ExitErrHandler: func(context *cli.Context, err error) {
			if err != nil {
				log.Fatalf("error with exprjson: %s", err)
			}
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "compact",
				Value: false,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError()
			}

			expr, err := exprjson.ParseString(c.Args().First(), "<arg>")
			if err != nil {
				tracerr.PrintSourceColor(err)
				os.Exit(1)
			}

			var out []byte
			if c.Bool("compact") {
				out, err = exprjson.Encode(exprjson.Convert(expr))
			} else {
				out, err = exprjson.EncodeIndent(exprjson.Convert(expr))
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "error encoding expression: %s\n", err)
				os.Exit(1)
			}

			fmt.Println(string(out))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "dump",
				Usage: "dump the parsed tree of an expression",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return usageError()
					}

					expr, err := exprjson.ParseString(c.Args().First(), "<arg>")
					if err != nil {
						tracerr.PrintSourceColor(err)
						os.Exit(1)
					}
					repr.Println(expr)
					return nil
				},
			},
		},
	}
	app.Run(os.Args)
}
