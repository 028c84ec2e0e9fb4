// Package gen writes synthetic measurement files. Output is a pure function
// of the Config, so tests and benchmarks can regenerate identical inputs.
package gen

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"

	"github.com/go-sif/brc/fixed"
)

var baseNames = []string{
	"Abha", "Abidjan", "Accra", "Addis Ababa", "Adelaide", "Alexandria",
	"Almaty", "Amsterdam", "Anchorage", "Ashgabat", "Athens", "Bangkok",
	"Bergen", "Bogotá", "Budapest", "Cairo", "Dakar", "Dushanbe",
	"Hamburg", "İzmir", "Kraków", "Lviv", "Malmö", "Reykjavík",
	"São Paulo", "Tromsø", "Zürich", "Ürümqi",
}

// Config describes a synthetic input
type Config struct {
	Rows     int   // the number of records to write
	Stations int   // the number of distinct names to draw from. Defaults to 400
	Seed     int64 // seeds the pseudo-random stream
}

// Names returns the distinct names a Config draws from
func Names(n int) []string {
	names := make([]string, n)
	for i := range names {
		base := baseNames[i%len(baseNames)]
		if i < len(baseNames) {
			names[i] = base
		} else {
			names[i] = fmt.Sprintf("%s %d", base, i/len(baseNames))
		}
	}
	return names
}

// Write writes cfg.Rows newline-terminated name;value records to w
func Write(w io.Writer, cfg Config) error {
	if cfg.Rows < 0 {
		return fmt.Errorf("Config.Rows must not be negative, was %d", cfg.Rows)
	}
	if cfg.Stations <= 0 {
		cfg.Stations = 400
	}
	names := Names(cfg.Stations)
	rng := rand.New(rand.NewSource(cfg.Seed))
	bw := bufio.NewWriterSize(w, 1<<16)
	line := make([]byte, 0, 64)
	for i := 0; i < cfg.Rows; i++ {
		tenths := rng.Int63n(2*fixed.MaxTenths+1) + fixed.MinTenths
		line = append(line[:0], names[rng.Intn(len(names))]...)
		line = append(line, ';')
		line = fixed.Decimal(tenths).AppendTo(line)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
