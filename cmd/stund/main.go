// Command stund is a minimal binding-only STUN responder: it listens on
// UDP, decodes each packet with the stun package, and if it is a Binding
// request replies with a Binding success response carrying the client's
// reflexive address in XOR-MAPPED-ADDRESS. Everything past that one
// exchange (retransmission, TURN allocation, ICE) is out of scope; this
// binary exists to exercise the codec against real sockets, not to be a
// production STUN server.
package main

import (
	"flag"
	"log"
	"net"
	"strconv"

	"github.com/pion/logging"

	"github.com/stunkit/stun"
)

func main() {
	addr := flag.String("addr", "0.0.0.0:3478", "address to listen on")
	flag.Parse()

	logger := logging.NewDefaultLoggerFactory().NewLogger("stund")

	conn, err := net.ListenPacket("udp4", *addr)
	if err != nil {
		log.Fatalf("listen: %s", err)
	}
	defer conn.Close()

	logger.Infof("listening on %s", conn.LocalAddr())

	buf := make([]byte, stun.MaxMessageSize)
	for {
		n, from, err := conn.ReadFrom(buf)
		if err != nil {
			logger.Errorf("read: %s", err)
			continue
		}
		handle(conn, from, buf[:n], logger)
	}
}

func handle(conn net.PacketConn, from net.Addr, packet []byte, logger logging.LeveledLogger) {
	if !stun.IsMessage(packet) {
		return
	}

	req, err := stun.DecodeWithLogger(packet, nil, logger.Warnf)
	if err != nil {
		logger.Warnf("decode: %s", err)
		return
	}
	if req.Class != stun.ClassRequest || req.Method != stun.MethodBinding {
		return
	}

	host, portStr, err := net.SplitHostPort(from.String())
	if err != nil {
		logger.Warnf("split host/port: %s", err)
		return
	}
	ip := net.ParseIP(host)
	port, err := strconv.Atoi(portStr)
	if err != nil {
		logger.Warnf("parse port: %s", err)
		return
	}

	resp := stun.New()
	if err := resp.Build(stun.ClassSuccess, stun.MethodBinding); err != nil {
		logger.Warnf("build: %s", err)
		return
	}
	resp.TransactionID = req.TransactionID

	xorAddr := stun.XORMappedAddress{IP: ip, Port: port}
	if err := xorAddr.AddTo(resp); err != nil {
		logger.Warnf("add xor-mapped-address: %s", err)
		return
	}
	resp.WriteHeader()

	if _, err := conn.WriteTo(stun.Encode(resp), from); err != nil {
		logger.Warnf("write: %s", err)
	}
}
