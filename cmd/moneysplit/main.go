// Command moneysplit splits an amount of money into shares that add up to
// the amount exactly.
//
// Usage:
//
//	moneysplit [flags] AMOUNT
//
// The amount may carry a currency code or a symbol of the selected locale,
// such as "USD 100" or "$100". Exactly one of --count, --ratio or --weights
// selects how the amount is split. Every flag can also be set with an
// environment variable prefixed with MONEYSPLIT_, such as MONEYSPLIT_COUNT,
// or in the file given by --config.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
