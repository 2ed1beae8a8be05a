// Package trispin builds symmetry-reduced bases and sparse Hamiltonian terms
// for spin-1/2 models on a triangular lattice wrapped on a torus.
//
// The lattice has nx × ny sites; site (x, y) is bit x + nx*y of a
// configuration. A basis is built for one crystal momentum (kx, ky) and,
// optionally, a fixed number of up spins. Every basis vector is a
// translation orbit with Bloch phases; orbits whose phases cancel are
// dropped.
//
// # Quick Start
//
//	eng := trispin.New()
//	p := trispin.Params{Nx: 4, Ny: 4, Kx: 0, Ky: 0}
//
//	set, _ := eng.BlochStates(ctx, p)
//	fmt.Println(set.Len())
//
//	h, _ := eng.HSSXY(ctx, p, 1) // nearest-neighbor XY exchange
//	exp := h.Export()            // COO triplets, owned by the caller
//
// Fixed magnetization:
//
//	p := trispin.Params{Nx: 6, Ny: 4, Kx: 1, Ky: 0, Restricted: true, Nup: 12}
//
// # Persistence
//
// Built bases are kept in an in-process LRU cache and, when a blob store is
// configured, persisted as compressed snapshots so later runs skip the orbit
// scan:
//
//	store := blobstore.NewLocalStore("./bases")
//	eng := trispin.New(trispin.WithStore(store), trispin.WithWorkers(8))
//
// Cloud storage:
//
//	s3Store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("bases/"))
//	eng := trispin.New(trispin.WithStore(s3Store))
//
// # Observability
//
// Engines log through a slog-based Logger and report to a MetricsCollector.
// The promcollector package exports those metrics to Prometheus:
//
//	eng := trispin.New(
//	    trispin.WithLogger(trispin.NewJSONLogger(slog.LevelInfo)),
//	    trispin.WithMetricsCollector(promcollector.New(prometheus.DefaultRegisterer)),
//	)
//
// # Hamiltonian Terms
//
//   - HSSZ, HSSXY, HSSPPMM, HSSPMZ: two-body terms over neighbor shell l (1..3)
//   - HSSSChi: scalar chirality over every elementary triangle
//   - SSZ, SSXY: two-body correlators between all sites at index offset l
//
// HSSPPMM and HSSPMZ change the magnetization and are only defined on
// unrestricted bases.
package trispin
