// Package main is a tiny helper utility to generate certificate/key fixture
// files for standalone benchmarking and manual testing of sslcache's
// PATH-based loaders (outside `go test`). It emits one self-signed
// certificate and matching EC private key per index into the output
// directory, named cert-<i>.pem and key-<i>.pem. Only the serial numbers
// follow -seed; keys and signatures are drawn from crypto/rand, so the
// files differ from run to run.
//
// Usage:
//   go run ./tools/dataset_gen -n 1000 -seed 42 -out ./fixtures
//
// Flags:
//   -n      number of cert/key pairs to generate (default 1000)
//   -seed   PRNG seed, for reproducible serial numbers (default current time)
//   -out    output directory (created if missing)
//
// © 2025 sslcache authors. MIT License.
package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"flag"
	"fmt"
	"math/big"
	mrand "math/rand"
	"os"
	"path/filepath"
	"time"
)

func main() {
	var (
		n       = flag.Int("n", 1000, "number of cert/key pairs to generate")
		seedVal = flag.Int64("seed", time.Now().UnixNano(), "PRNG seed for serial numbers")
		outDir  = flag.String("out", "./fixtures", "output directory")
	)
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "cannot create output directory:", err)
		os.Exit(1)
	}

	rnd := mrand.New(mrand.NewSource(*seedVal))

	for i := 0; i < *n; i++ {
		if err := writePair(*outDir, i, rnd); err != nil {
			fmt.Fprintln(os.Stderr, "pair", i, "failed:", err)
			os.Exit(1)
		}
	}
	fmt.Printf("wrote %d cert/key pairs to %s\n", *n, *outDir)
}

func writePair(dir string, i int, rnd *mrand.Rand) error {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return err
	}

	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(rnd.Int63()),
		Subject:      pkix.Name{CommonName: fmt.Sprintf("fixture-%d.example.com", i)},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(365 * 24 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		return err
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("cert-%d.pem", i)), certPEM, 0o644); err != nil {
		return err
	}

	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return err
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	return os.WriteFile(filepath.Join(dir, fmt.Sprintf("key-%d.pem", i)), keyPEM, 0o600)
}
