package common

// Token is a verified fungible-token contract. It is only ever built from
// a candidate whose decimals, name and symbol calls all succeeded and
// decoded; partially verified candidates never become a Token.
type Token struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint64 `json:"decimals"`
}
