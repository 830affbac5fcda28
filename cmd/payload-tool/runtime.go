package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"rubin.dev/seqpayload/config"
	"rubin.dev/seqpayload/payload"
	"rubin.dev/seqpayload/payloadstore"
	"rubin.dev/seqpayload/vid"
)

// txJSON is the wire shape read by build: a namespace id (hex-encoded
// 8 bytes) and a transaction payload (hex-encoded bytes).
type txJSON struct {
	NamespaceID string `json:"namespace_id"`
	PayloadHex  string `json:"payload_hex"`
}

func decodeTxs(r io.Reader) ([]payload.Transaction, error) {
	var in []txJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	out := make([]payload.Transaction, 0, len(in))
	for i, t := range in {
		nsRaw, err := hex.DecodeString(t.NamespaceID)
		if err != nil || len(nsRaw) != len(payload.NamespaceId{}) {
			return nil, fmt.Errorf("tx %d: namespace_id must be %d hex-encoded bytes", i, len(payload.NamespaceId{}))
		}
		payloadRaw, err := hex.DecodeString(t.PayloadHex)
		if err != nil {
			return nil, fmt.Errorf("tx %d: payload_hex: %w", i, err)
		}
		var ns payload.NamespaceId
		copy(ns[:], nsRaw)
		out = append(out, payload.Transaction{Namespace: ns, Payload: payloadRaw})
	}
	return out, nil
}

// runBuild reads transactions as a JSON array from -in (or stdin), packs
// them into a payload bounded by -max-block-size, prints the builder
// commitment and per-namespace transaction counts, and, if -store is set,
// persists the built payload keyed by that commitment.
func runBuild(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("payload-tool build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "", "input JSON file of {namespace_id, payload_hex} (default stdin)")
	maxBlockSize := fs.Uint64("max-block-size", config.DefaultInstanceConfig().ChainConfig.MaxBlockSize, "maximum packed payload byte length")
	storeDir := fs.String("store", "", "optional directory to persist the built payload into")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	in := io.Reader(os.Stdin)
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			fmt.Fprintf(stderr, "open input: %v\n", err)
			return 2
		}
		defer f.Close()
		in = f
	}

	txs, err := decodeTxs(in)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	}

	cfg := config.InstanceConfig{ChainConfig: config.ChainConfig{MaxBlockSize: *maxBlockSize}}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "invalid config: %v\n", err)
		return 2
	}

	p, nsTable, err := payload.BuildPayload(txs, cfg, payload.WithLogger(func(format string, a ...any) {
		fmt.Fprintf(stderr, format+"\n", a...)
	}))
	if err != nil {
		fmt.Fprintf(stderr, "build failed: %v\n", err)
		return 1
	}

	commitment := p.BuilderCommitment(nsTable)
	headerCommitment := payload.NsTableCommitment(nsTable)

	fmt.Fprintf(stdout, "builder_commitment: %x\n", commitment)
	fmt.Fprintf(stdout, "ns_table_commitment: %x\n", headerCommitment)
	fmt.Fprintf(stdout, "payload_byte_len: %d\n", p.ByteLen())
	pBytes := p.Bytes()
	for i := 0; i < nsTable.NumNamespaces(); i++ {
		nsID, _ := nsTable.NsID(i)
		start, end := nsTable.NsRange(i, p.ByteLen())
		ns := payload.ParseNsPayload(pBytes[start:end])
		fmt.Fprintf(stdout, "namespace: id=%x tx_count=%d\n", nsID, ns.NumTxs())
	}

	if *storeDir != "" {
		st, err := payloadstore.Open(*storeDir)
		if err != nil {
			fmt.Fprintf(stderr, "store open: %v\n", err)
			return 1
		}
		defer st.Close()
		if err := st.Put(commitment, pBytes, nsTable.Encode()); err != nil {
			fmt.Fprintf(stderr, "store put: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "stored under %s\n", *storeDir)
	}
	return 0
}

// runVerify loads a previously built payload from -store by its builder
// commitment, disperses it under the reference VID scheme, generates an
// inclusion proof for the transaction at (-ns, -tx), and reports whether
// that proof verifies.
func runVerify(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("payload-tool verify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	storeDir := fs.String("store", "", "directory the payload was built into")
	commitmentHex := fs.String("commitment", "", "builder commitment, hex-encoded")
	nsIndex := fs.Uint("ns", 0, "namespace index")
	txIndex := fs.Uint("tx", 0, "transaction index within the namespace")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *storeDir == "" || *commitmentHex == "" {
		fmt.Fprintln(stderr, "both -store and -commitment are required")
		return 2
	}
	commitmentRaw, err := hex.DecodeString(*commitmentHex)
	if err != nil || len(commitmentRaw) != 32 {
		fmt.Fprintln(stderr, "-commitment must be 32 hex-encoded bytes")
		return 2
	}
	var commitment [32]byte
	copy(commitment[:], commitmentRaw)

	st, err := payloadstore.Open(*storeDir)
	if err != nil {
		fmt.Fprintf(stderr, "store open: %v\n", err)
		return 1
	}
	defer st.Close()

	nsPayloads, nsTableEncoded, ok, err := st.Get(commitment)
	if err != nil {
		fmt.Fprintf(stderr, "store get: %v\n", err)
		return 1
	}
	if !ok {
		fmt.Fprintln(stdout, "result: not_found")
		return 0
	}

	nsTable := payload.ParseNsTable(nsTableEncoded)
	p := payload.FromBytes(nsPayloads, nsTable)
	headerCommitment := payload.NsTableCommitment(nsTable)

	scheme := vid.Ref{}
	disperse, err := scheme.Disperse(nsPayloads)
	if err != nil {
		fmt.Fprintf(stderr, "disperse: %v\n", err)
		return 1
	}

	idx := payload.Index{Ns: payload.NsIndex(*nsIndex), Tx: payload.TxIndex(*txIndex)}
	_, proof, ok := p.TransactionWithProof(nsTable, idx, disperse.Common, scheme)
	if !ok {
		fmt.Fprintln(stdout, "result: reject index_out_of_bounds")
		return 0
	}

	tx, ok := payload.Verify(proof, idx, disperse.Common, disperse.Commit, scheme, headerCommitment)
	if !ok {
		fmt.Fprintln(stdout, "result: reject")
		return 0
	}
	fmt.Fprintf(stdout, "result: accept namespace=%x payload_len=%d\n", tx.Namespace, len(tx.Payload))
	return 0
}
