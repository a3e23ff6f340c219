package main

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"

	"github.com/PinkDiamond1/libbitcoin-system/encoding/bitcoin"
	"github.com/PinkDiamond1/libbitcoin-system/log"
)

var ctx = context.Background()

func main() {
	log.SetPrefix("cmd", "varint")

	args := os.Args[1:]

	if len(args) == 0 {
		// decode from stdin
		b, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			errorf("could not read from stdin: %s", err)
		}

		n, err := bitcoin.ReadVarint(bytes.NewReader(b))
		if err != nil {
			errorf("could not parse varint: %s", err)
		}
		fmt.Println(n)
		return
	}

	// encode from args
	if len(args) != 1 {
		errorf("invalid argument count %d; varint must read from stdin or take 1 argument", len(args))
	}

	val, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		errorf("could not parse base 10 uint")
	}

	var buf bytes.Buffer
	_, err = bitcoin.WriteVarint(&buf, val)
	if err != nil {
		errorf("could not encode varint: %s", err)
	}

	_, err = os.Stdout.Write(buf.Bytes())
	if err != nil {
		errorf("could not write to stdout: %s", err)
	}
}

func errorf(msg string, args ...interface{}) {
	log.Fatal(ctx, log.KeyMessage, fmt.Sprintf(msg, args...))
}
