// Command oscdump listens for OSC packets and prints each decoded
// message to stdout. It supports two transports: UDP datagrams (the
// common case) and a SLIP-framed byte stream read from stdin, for links
// that have no built-in message framing.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/xioTechnologies/OSC99/internal/oscfmt"
	"github.com/xioTechnologies/OSC99/osc"
	"github.com/xioTechnologies/OSC99/slip"
)

type config struct {
	Listen string `toml:"listen"`
	Slip   bool   `toml:"slip"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "oscdump:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = pflag.StringP("config", "c", "", "path to a TOML config file (overridden by flags)")
		listen     = pflag.StringP("listen", "l", ":9000", "UDP address to listen on")
		useSlip    = pflag.Bool("slip", false, "read a SLIP-framed byte stream from stdin instead of UDP")
		verbose    = pflag.BoolP("verbose", "v", false, "enable debug logging")
	)
	pflag.Parse()

	cfg := config{Listen: *listen, Slip: *useSlip}
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		if pflag.CommandLine.Changed("listen") {
			cfg.Listen = *listen
		}
		if pflag.CommandLine.Changed("slip") {
			cfg.Slip = *useSlip
		}
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

	if cfg.Slip {
		return dumpSlip(logger, os.Stdin)
	}
	return dumpUDP(logger, cfg.Listen)
}

func dumpUDP(logger *zap.Logger, listen string) error {
	addr, err := net.ResolveUDPAddr("udp", listen)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", listen, err)
	}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("listening on %q: %w", listen, err)
	}
	defer conn.Close()
	logger.Info("listening", zap.String("addr", listen), zap.String("transport", "udp"))

	buf := make([]byte, osc.MaxTransportSize)
	for {
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			logger.Error("read failed", zap.Error(err))
			continue
		}
		text, err := oscfmt.Packet(buf[:n])
		if err != nil {
			logger.Warn("malformed packet", zap.Stringer("from", from), zap.Error(err))
			continue
		}
		fmt.Print(text)
	}
}

func dumpSlip(logger *zap.Logger, r *os.File) error {
	logger.Info("reading SLIP stream from stdin")
	dec := slip.NewDecoder(osc.MaxTransportSize)
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, b := range buf[:n] {
				packet, complete, ferr := dec.Feed(b)
				if ferr != nil {
					logger.Warn("SLIP framing error", zap.Error(ferr))
					continue
				}
				if !complete {
					continue
				}
				text, perr := oscfmt.Packet(packet)
				if perr != nil {
					logger.Warn("malformed packet", zap.Error(perr))
					continue
				}
				fmt.Print(text)
			}
		}
		if err != nil {
			return err
		}
	}
}
