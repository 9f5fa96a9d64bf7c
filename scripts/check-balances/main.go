// check-balances: queries the TRAG balance of a set of addresses on every
// preset network that has the token deployed, in parallel, and prints a
// summary table.
//
// Run from the module root:
//
//	go run ./scripts/check-balances 0xAddr1 0xAddr2 ...
package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Mohsinsiddi/tragcli/internal/config"
	"github.com/Mohsinsiddi/tragcli/internal/rpc"
	"github.com/Mohsinsiddi/tragcli/internal/token"
	"github.com/Mohsinsiddi/tragcli/internal/ui"
)

const rpcTimeout = 12 * time.Second

type result struct {
	network string
	wallet  string // short form
	balance string
	err     string
}

func main() {
	wallets := os.Args[1:]
	if len(wallets) == 0 {
		fmt.Fprintln(os.Stderr, "usage: check-balances <address>...")
		os.Exit(2)
	}
	for _, w := range wallets {
		if _, err := token.ParseAddress(w); err != nil {
			fmt.Fprintln(os.Stderr, ui.Err(err.Error()))
			os.Exit(2)
		}
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []result
	)

	for _, name := range config.PresetNames() {
		p, _ := config.GetPreset(name)
		if p.ContractAddress == "" {
			continue
		}

		wg.Add(1)
		go func(p config.Preset) {
			defer wg.Done()
			rows := checkNetwork(p, wallets)
			mu.Lock()
			results = append(results, rows...)
			mu.Unlock()
		}(p)
	}

	wg.Wait()
	printTable(results)
}

// checkNetwork picks the fastest preset RPC and reads every wallet's balance.
func checkNetwork(p config.Preset, wallets []string) []result {
	ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
	defer cancel()

	fail := func(reason string) []result {
		out := make([]result, len(wallets))
		for i, w := range wallets {
			out[i] = result{network: p.Name, wallet: ui.TruncateAddr(w), balance: "-", err: reason}
		}
		return out
	}

	url, err := rpc.Select(ctx, p.RPCURLs, rpc.StrategyFastest, nil)
	if err != nil {
		return fail("unreachable")
	}
	client, err := token.Dial(ctx, token.Config{
		RPCURL:    url,
		Contract:  common.HexToAddress(p.ContractAddress),
		ChainID:   big.NewInt(p.ChainID),
		Precision: token.DefaultPrecision,
	}, token.ReadOnly{})
	if err != nil {
		return fail(shortErr(err))
	}
	defer client.Close()

	out := make([]result, 0, len(wallets))
	for _, w := range wallets {
		r := result{network: p.Name, wallet: ui.TruncateAddr(w)}
		bal, err := client.Balance(ctx, w)
		if err != nil {
			r.balance, r.err = "-", shortErr(err)
		} else {
			r.balance = trimZeros(bal.Formatted)
		}
		out = append(out, r)
	}
	return out
}

func printTable(results []result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.network != b.network {
			return a.network < b.network
		}
		return a.wallet < b.wallet
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NETWORK\tWALLET\tBALANCE\tNOTE")
	fmt.Fprintln(w, strings.Repeat("-", 12)+"\t"+
		strings.Repeat("-", 14)+"\t"+
		strings.Repeat("-", 24)+"\t"+
		strings.Repeat("-", 12))
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s TRAG\t%s\n", r.network, r.wallet, r.balance, r.err)
	}
	w.Flush()
}

func shortErr(err error) string {
	s := err.Error()
	if len(s) > 30 {
		return s[:30] + "…"
	}
	return s
}

// trimZeros removes trailing zeros after the point: "0.050000" → "0.05".
func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
