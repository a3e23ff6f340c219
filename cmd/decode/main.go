// Command decode reads a hex-encoded script or witness from stdin and
// prints its decoded form.
package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/PinkDiamond1/libbitcoin-system/encoding/bufpool"
	bitcoinjson "github.com/PinkDiamond1/libbitcoin-system/encoding/json"
	"github.com/PinkDiamond1/libbitcoin-system/log"
	"github.com/PinkDiamond1/libbitcoin-system/log/rotation"
	"github.com/PinkDiamond1/libbitcoin-system/log/splunk"
	"github.com/PinkDiamond1/libbitcoin-system/script"
	"github.com/PinkDiamond1/libbitcoin-system/stream"
)

const help = `
Command decode reads a hex-encoded item from stdin, decodes it, and
prints its disassembled or JSON representation to stdout.

	pbpaste|decode script
	pbpaste|decode witness

By default, warnings and fatal errors are logged to stdout. -log-file
and -log-splunk redirect them to a rotating file or a Splunk TCP
collector instead; at most one of the two may be set.
`

var (
	logFile   = flag.String("log-file", "", "write log output to a rotating file at this path instead of stdout")
	logSplunk = flag.String("log-splunk", "", "forward log output to a Splunk TCP collector at this address instead of stdout")
)

var ctx = context.Background()

func fatalf(format string, args ...interface{}) {
	log.Fatal(ctx, log.KeyMessage, fmt.Sprintf(format, args...))
}

func prettyPrint(obj interface{}) {
	j, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		fatalf("error json-marshaling: %s", err)
	}
	fmt.Println(string(j))
}

func readHexStdin() []byte {
	buf := bufpool.Get()
	defer bufpool.Put(buf)
	if _, err := buf.ReadFrom(os.Stdin); err != nil {
		fatalf("%v", err)
	}
	data := bytes.TrimSpace(buf.Bytes())
	b := make([]byte, len(data)/2)
	if _, err := hex.Decode(b, data); err != nil {
		fatalf("err decoding hex: %s", err)
	}
	return b
}

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, help)
	}
	flag.Parse()

	switch {
	case *logFile != "" && *logSplunk != "":
		fatalf("-log-file and -log-splunk are mutually exclusive")
	case *logFile != "":
		log.SetOutput(rotation.Create(*logFile, 10<<20, 4))
	case *logSplunk != "":
		log.SetOutput(splunk.New(*logSplunk, []byte("decode: dropped log data\n")))
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println(strings.TrimSpace(help))
		return
	}

	switch strings.ToLower(args[0]) {
	case "script":
		b := readHexStdin()
		s := script.ParseScript(b)
		fmt.Println(s.String())
		if !s.IsValid() {
			log.Messagef(ctx, "script contains an invalid or underflowed operation")
		}
	case "witness":
		b := readHexStdin()
		r := stream.NewReader(bytes.NewReader(b))
		w := script.ReadWitness(r)
		if !w.Valid {
			fatalf("error decoding witness: truncated input")
		}
		items := make([]bitcoinjson.HexBytes, len(w.Stack))
		for i, item := range w.Stack {
			items[i] = bitcoinjson.HexBytes(item)
		}
		prettyPrint(items)
	default:
		fatalf("unrecognized entity `%s`", args[0])
	}
}
