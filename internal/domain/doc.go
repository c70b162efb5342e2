// Package domain holds the calculator input and result records, the tagged
// calculation context shared with the advisory collaborator, and the chat and
// calculation records kept by the storage layer.
package domain

import "github.com/shopspring/decimal"

func init() {
	// Calculator records travel as JSON numbers, matching the browser client.
	decimal.MarshalJSONWithoutQuotes = true
}
