// Package tron invokes TRON smart-contract methods over the node and event
// server HTTP APIs.
//
// Each ABI entry of a contract becomes an invocation handle with three
// operations: Call for read-only queries, Send for signed state-changing
// transactions with receipt confirmation, and Watch for polled event
// subscriptions with duplicate suppression.
//
// # Basic Usage
//
// Create a client, bind a contract, and invoke its methods:
//
//	client, err := tron.NewClient("https://api.trongrid.io",
//	    tron.WithEventServer("https://api.trongrid.io"),
//	    tron.WithDefaultPrivateKey(hexKey),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	usdt := tron.MustParseAddress("TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t")
//	contract := tron.NewContract(client, tron.MustParseABI(trc20ABI),
//	    tron.WithAddress(usdt),
//	)
//
//	// Query path: constant call, decoded result.
//	balance, err := contract.Call(nil, "balanceOf", holder)
//
//	// Mutation path: build, sign, broadcast, await the receipt.
//	res, err := contract.Send(nil, "transfer", recipient, amount)
//
// Passing nil options applies the defaults: DefaultFeeLimit, zero call
// value, the client's default sender and key, and receipt polling on.
//
// # Contract Loading
//
// A handle built from a local ABI is ready immediately. At loads the ABI
// from the chain instead:
//
//	contract, err := tron.NewContract(client, abi.ABI{}).At(ctx, usdt)
//
// # Event Watching
//
// Watch polls the event server at a fixed interval, delivering each new
// event exactly once:
//
//	watcher, err := contract.Watch(ctx, "Transfer", func(ev *tron.Event, err error) {
//	    if err != nil {
//	        log.Printf("fetch: %v", err)
//	        return
//	    }
//	    log.Printf("transfer at block %d: %v", ev.BlockNumber, ev.Values)
//	})
//	defer watcher.Stop()
//
// Fetch errors are delivered to the handler and the watch continues; Stop
// is idempotent and ends delivery.
//
// # Asynchronous Invocation
//
// Every blocking operation has a channel form producing exactly one
// result:
//
//	outcome := <-contract.MustMethod("transfer").SendAsync(nil, recipient, amount)
//	res, err := outcome.Unwrap()
//
// # Addresses and Units
//
// Address accepts base58check ("T..."), 41-prefixed hex, and raw EVM hex
// forms. FromSun, ToSun, and ParseTRX convert between TRX decimals and the
// integer SUN amounts the node expects.
package tron
