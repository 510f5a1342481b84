// Package ziptie is the module root of an incremental co-activity
// clustering engine.
//
// 🚀 What is in here?
//
//	ziptie/    the engine: normalizer, nucleation, agglomeration, projection
//	bundlemap/ growable (bundle, cable) membership list
//	matrix/    dense float64 matrices with the accumulate/reset kernels
//	logging/   subsystem-tagged log lines
//	config/    YAML + .env + ZIPTIE_* settings for the command
//	snapshot/  SQLite history of bundle listings
//	ffmpeg/    stills ⇄ movie helpers for visualisation output
//	cmd/ziptie command-line driver
//
// ✨ Quick start
//
//	zt, _ := ziptie.New(16, ziptie.WithName("retina"))
//	for _, v := range vectors {
//		acts, err := zt.Step(v)
//		...
//	}
//	fmt.Print(zt.Describe())
package ziptie
