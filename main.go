// Package main is the entry point for the mapbridge middleware, which
// reconciles fragrance-evaluation records between the legacy ADAMO schema
// (Oracle, GIV_MAP) and the MAP Tool schema (PostgreSQL, map_adm). It
// translates records field by field in both directions, optionally persists
// the translated record, and can run a one-time dependency-ordered bulk
// migration from ADAMO into an empty MAP Tool database.
package main

import "github.com/Umanova-doo/maptool-adamo-middleware-api/cmd"

func main() {
	cmd.Execute()
}
