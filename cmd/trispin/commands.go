package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"

	"github.com/hupe1980/trispin"
	"github.com/hupe1980/trispin/promcollector"
	"github.com/hupe1980/trispin/sparse"
)

var (
	nxFlag = cli.IntFlag{Name: "nx", Usage: "lattice extent along a1"}
	nyFlag = cli.IntFlag{Name: "ny", Usage: "lattice extent along a2"}
	kxFlag = cli.IntFlag{Name: "kx", Usage: "momentum quantum number along a1"}
	kyFlag = cli.IntFlag{Name: "ky", Usage: "momentum quantum number along a2"}
	nupFlag = cli.IntFlag{
		Name:  "nup",
		Usage: "restrict the basis to this number of up spins",
	}
	fullFlag = cli.BoolFlag{
		Name:  "full",
		Usage: "use the unrestricted basis even if the config sets nup",
	}
	leadsFlag = cli.BoolFlag{
		Name:  "leads",
		Usage: "print the leading configuration of every Bloch function",
	}
	termFlag = cli.StringFlag{
		Name:     "term",
		Usage:    "Hamiltonian term (see the terms command)",
		Required: true,
	}
	rangeFlag = cli.IntFlag{
		Name:  "l",
		Usage: "neighbor shell for two-body terms or site offset for all_* correlators",
		Value: 1,
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "write the matrix to this file instead of stdout",
	}
)

var sectorFlags = []cli.Flag{&nxFlag, &nyFlag, &kxFlag, &kyFlag, &nupFlag, &fullFlag}

var BasisCmd = cli.Command{
	Action: doBasis,
	Name:   "basis",
	Usage:  "build the Bloch basis of a sector and print a summary",
	Flags:  append([]cli.Flag{&leadsFlag}, sectorFlags...),
}

var HamiltonianCmd = cli.Command{
	Action: doHamiltonian,
	Name:   "hamiltonian",
	Usage:  "assemble one Hamiltonian term as a COO matrix in JSON",
	Flags:  append([]cli.Flag{&termFlag, &rangeFlag, &outFlag}, sectorFlags...),
}

var TermsCmd = cli.Command{
	Action: doTerms,
	Name:   "terms",
	Usage:  "list the supported Hamiltonian terms",
}

// loadConfig reads the config file and applies every flag set on the
// command line on top of it.
func loadConfig(c *cli.Context) (Config, error) {
	cfg, err := Load(c.String(configFlag.Name))
	if err != nil {
		return Config{}, err
	}

	if c.IsSet(logLevelFlag.Name) {
		cfg.Logging.Level = c.String(logLevelFlag.Name)
	}
	if c.IsSet(logFormatFlag.Name) {
		cfg.Logging.Format = c.String(logFormatFlag.Name)
	}
	if c.IsSet(workersFlag.Name) {
		cfg.Workers = c.Int(workersFlag.Name)
	}
	if c.IsSet(memoryLimitFlag.Name) {
		cfg.Limits.MemoryBytes = c.Int64(memoryLimitFlag.Name)
	}
	if c.IsSet(storeFlag.Name) {
		cfg.Store.Kind = c.String(storeFlag.Name)
	}
	if c.IsSet(storePathFlag.Name) {
		cfg.Store.Path = c.String(storePathFlag.Name)
	}
	if c.IsSet(metricsAddrFlag.Name) {
		cfg.Metrics.Addr = c.String(metricsAddrFlag.Name)
	}

	if c.IsSet(nxFlag.Name) {
		cfg.Lattice.Nx = c.Int(nxFlag.Name)
	}
	if c.IsSet(nyFlag.Name) {
		cfg.Lattice.Ny = c.Int(nyFlag.Name)
	}
	if c.IsSet(kxFlag.Name) {
		cfg.Lattice.Kx = c.Int(kxFlag.Name)
	}
	if c.IsSet(kyFlag.Name) {
		cfg.Lattice.Ky = c.Int(kyFlag.Name)
	}
	if c.IsSet(nupFlag.Name) {
		cfg.Lattice.Restricted = true
		cfg.Lattice.Nup = c.Int(nupFlag.Name)
	}
	if c.Bool(fullFlag.Name) {
		cfg.Lattice.Restricted = false
	}

	normalizeConfig(&cfg)
	return cfg, nil
}

func newEngine(c *cli.Context, cfg Config) (*trispin.Engine, error) {
	opts, err := cfg.EngineOptions(c.Context)
	if err != nil {
		return nil, err
	}
	if cfg.Metrics.Addr == "" {
		return trispin.New(opts...), nil
	}

	reg := prometheus.NewRegistry()
	opts = append(opts, trispin.WithMetricsCollector(promcollector.New(reg)))
	eng := trispin.New(opts...)
	if err := serveMetrics(c.Context, cfg.Metrics.Addr, reg, eng.Logger()); err != nil {
		return nil, err
	}
	return eng, nil
}

// serveMetrics exposes reg on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *trispin.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	logger.Info("serving metrics", "addr", ln.Addr().String())
	return nil
}

func doBasis(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	eng, err := newEngine(c, cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	set, err := eng.BlochStates(c.Context, cfg.Params())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := set.Stats()
	w := c.App.Writer
	fmt.Fprintf(w, "sector:     %s\n", set.Sector())
	fmt.Fprintf(w, "functions:  %d\n", set.Len())
	fmt.Fprintf(w, "scanned:    %d\n", st.Scanned)
	fmt.Fprintf(w, "orbits:     %d\n", st.Orbits)
	fmt.Fprintf(w, "vanished:   %d\n", st.Vanished)
	fmt.Fprintf(w, "discarded:  %d\n", st.DiscardedConfigs)
	fmt.Fprintf(w, "elapsed:    %s\n", elapsed.Round(time.Microsecond))

	if c.Bool(leadsFlag.Name) {
		for i, bf := range set.All() {
			fmt.Fprintf(w, "%d\t%s\t%d\t%.6g\n", i, bf.Lead, len(bf.Decs), bf.Norm)
		}
	}
	return nil
}

func doHamiltonian(c *cli.Context) error {
	term, err := trispin.ParseTerm(c.String(termFlag.Name))
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	eng, err := newEngine(c, cfg)
	if err != nil {
		return err
	}

	m, err := eng.Build(c.Context, cfg.Params(), term, c.Int(rangeFlag.Name))
	if err != nil {
		return err
	}

	out := c.String(outFlag.Name)
	if out == "" {
		return writeMatrix(c.App.Writer, m)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := writeMatrix(f, m); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func doTerms(c *cli.Context) error {
	for _, t := range trispin.Terms {
		fmt.Fprintln(c.App.Writer, t)
	}
	return nil
}

// cooMatrix is the JSON form of a sparse matrix. Entry i is
// re[i] + i·im[i] at (row[i], col[i]).
type cooMatrix struct {
	NRows uint32    `json:"nrows"`
	NCols uint32    `json:"ncols"`
	Row   []uint32  `json:"row"`
	Col   []uint32  `json:"col"`
	Re    []float64 `json:"re"`
	Im    []float64 `json:"im"`
}

func writeMatrix(w io.Writer, m *sparse.CoordMatrix) error {
	e := m.Export()
	data := e.Data.Slice()
	out := cooMatrix{
		NRows: e.NRows,
		NCols: e.NCols,
		Row:   e.Row.Slice(),
		Col:   e.Col.Slice(),
		Re:    make([]float64, len(data)),
		Im:    make([]float64, len(data)),
	}
	if out.Row == nil {
		out.Row, out.Col = []uint32{}, []uint32{}
	}
	for i, v := range data {
		out.Re[i], out.Im[i] = real(v), imag(v)
	}
	return json.NewEncoder(w).Encode(out)
}
