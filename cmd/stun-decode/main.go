// Command stun-decode decodes a base64-encoded STUN message and prints
// its class, method, transaction ID and attribute set.
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/stunkit/stun"
)

func main() {
	key := flag.String("key", "", "MESSAGE-INTEGRITY key (short-term password), optional")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", "stun-decode")
		fmt.Fprintln(os.Stderr, "stun-decode AAEAHCESpEJML0JTQWsyVXkwcmGALwAWaHR0cDovL2xvY2FsaG9zdDozMDAwLwAA")
		fmt.Fprintln(os.Stderr, "First argument must be a base64.StdEncoding-encoded message")
		flag.PrintDefaults()
	}
	flag.Parse()

	data, err := base64.StdEncoding.DecodeString(flag.Arg(0))
	if err != nil {
		log.Fatalln("unable to decode base64 value:", err)
	}

	var integrityKey []byte
	if *key != "" {
		integrityKey = []byte(stun.NewShortTermIntegrity(*key))
	}

	m, err := stun.DecodeWithLogger(data, integrityKey, func(format string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, "warning: "+format+"\n", args...)
	})
	if err != nil {
		log.Fatalln("unable to decode message:", err)
	}

	fmt.Println(m)
	decoded, err := m.Decoded()
	if err != nil {
		log.Fatalln("unable to decode attributes:", err)
	}
	for name, v := range decoded {
		fmt.Printf("  %s: %v\n", name, v)
	}
}
