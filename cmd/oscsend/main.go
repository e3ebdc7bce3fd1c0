// Command oscsend builds a single OSC message from command-line
// arguments and sends it to a UDP address, or writes it SLIP-framed to
// stdout for piping into a byte-stream transport.
package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/xioTechnologies/OSC99/osc"
	"github.com/xioTechnologies/OSC99/slip"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "oscsend:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dest    = pflag.StringP("dest", "d", "", "UDP address to send to, e.g. 127.0.0.1:9000")
		useSlip = pflag.Bool("slip", false, "write a SLIP-framed packet to stdout instead of sending UDP")
		verbose = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	args := pflag.Args()
	if len(args) < 1 {
		return fmt.Errorf("usage: oscsend [flags] /address [type:value ...]")
	}

	zapCfg := zap.NewProductionConfig()
	if *verbose {
		zapCfg = zap.NewDevelopmentConfig()
	}
	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()

	msg, err := buildMessage(args[0], args[1:])
	if err != nil {
		return fmt.Errorf("building message: %w", err)
	}
	encoded, err := msg.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	if *useSlip {
		framed := slip.Encode(nil, encoded)
		_, err := os.Stdout.Write(framed)
		return err
	}

	if *dest == "" {
		return fmt.Errorf("--dest is required unless --slip is set")
	}
	addr, err := net.ResolveUDPAddr("udp", *dest)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", *dest, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return fmt.Errorf("dialing %q: %w", *dest, err)
	}
	defer conn.Close()
	if _, err := conn.Write(encoded); err != nil {
		return fmt.Errorf("sending: %w", err)
	}
	logger.Info("sent message", zap.String("address", msg.Address), zap.Int("bytes", len(encoded)))
	return nil
}

// buildMessage parses argSpecs of the form "type:value" — e.g. "i:42",
// "f:1.5", "s:hello" — into typed Add* calls on a new Message.
func buildMessage(address string, argSpecs []string) (*osc.Message, error) {
	msg, err := osc.NewMessage(address)
	if err != nil {
		return nil, err
	}
	for _, spec := range argSpecs {
		typ, value, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("argument %q must be of the form type:value", spec)
		}
		if err := addArg(msg, typ, value); err != nil {
			return nil, fmt.Errorf("argument %q: %w", spec, err)
		}
	}
	return msg, nil
}

func addArg(msg *osc.Message, typ, value string) error {
	switch typ {
	case "i":
		v, err := strconv.ParseInt(value, 10, 32)
		if err != nil {
			return err
		}
		return msg.AddInt32(int32(v))
	case "h":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		return msg.AddInt64(v)
	case "f":
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return err
		}
		return msg.AddFloat32(float32(v))
	case "d":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		return msg.AddDouble(v)
	case "s":
		return msg.AddString(value)
	case "S":
		return msg.AddAltString(osc.AltString(value))
	case "c":
		if len(value) != 1 {
			return fmt.Errorf("char argument must be exactly one byte")
		}
		return msg.AddChar(osc.Char(value[0]))
	case "T":
		return msg.AddBool(true)
	case "F":
		return msg.AddBool(false)
	case "N":
		return msg.AddNil()
	case "I":
		return msg.AddInfinitum()
	default:
		return fmt.Errorf("unsupported argument type %q", typ)
	}
}
