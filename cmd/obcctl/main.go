// Command obcctl is a demo CLI wiring config.Load, an obclog/logrus
// logger, and ops.Client's UploadToBootloader choreographer against an
// in-memory simulated device, in the style of the teacher's
// examples/with_progress command.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/cubespace-aero/go-tctlm/config"
	"github.com/cubespace-aero/go-tctlm/endpoint"
	"github.com/cubespace-aero/go-tctlm/iobuf"
	"github.com/cubespace-aero/go-tctlm/obclog"
	"github.com/cubespace-aero/go-tctlm/ops"
)

func main() {
	configPath := flag.String("config", "", "path to obcctl.yaml (defaults to ./obcctl.yaml)")
	endpointName := flag.String("endpoint", "primary", "endpoint name from the profile's endpoints map")
	flag.Parse()

	profile, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "obcctl: config: %v\n", err)
		os.Exit(1)
	}

	logger := logrus.New()
	if level, parseErr := logrus.ParseLevel(profile.Global.LogLevel); parseErr == nil {
		logger.SetLevel(level)
	}
	log := obclog.FromLogrus(logger)

	spec, ok := profile.Endpoints[*endpointName]
	if !ok {
		fmt.Fprintf(os.Stderr, "obcctl: endpoint %q not found in profile\n", *endpointName)
		os.Exit(1)
	}
	ep, err := spec.ToEndpoint(profile.Global.DefaultTimeoutMS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "obcctl: endpoint %q: %v\n", *endpointName, err)
		os.Exit(1)
	}

	device := &simDevice{}
	client := ops.NewClient(device,
		ops.WithLogger(log),
		ops.WithProgressCallback(func(p ops.Progress) {
			fmt.Printf("[%s] %s %s\n", p.Operation, p.Phase, p.Detail)
		}),
	)

	firmware := demoFirmware()
	if err := runUpload(client, ep, firmware); err != nil {
		fmt.Fprintf(os.Stderr, "obcctl: upload failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("obcctl: upload complete")
}

// demoFirmware stands in for a real firmware file: a 2-byte size prefix
// naming a one-byte metadata block, followed by a small payload.
func demoFirmware() []byte {
	meta := []byte{1, 0, 0xAB}
	data := bytes.Repeat([]byte{0x42}, 300)
	return append(meta, data...)
}

func runUpload(client *ops.Client, ep endpoint.Endpoint, firmware []byte) error {
	buf := iobuf.NewReaderProvider(bytes.NewReader(firmware))
	dataSize := len(firmware) - 3 // minus the 2-byte size prefix and 1 metadata byte
	return client.UploadToBootloader(ep, buf, dataSize)
}
